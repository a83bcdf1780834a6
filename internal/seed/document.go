// Package seed replays a YAML roster through the public services so seeded
// rows pass the same validation as API writes.
package seed

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/yungbote/shiftplan-backend/internal/domain/account"
)

type Document struct {
	Superusers []AccountSpec `yaml:"superusers"`
	Accounts   []AccountSpec `yaml:"accounts"`
	Owners     []OwnerSpec   `yaml:"owners"`
}

type AccountSpec struct {
	Email           string `yaml:"email"`
	Password        string `yaml:"password"`
	Name            string `yaml:"name"`
	account.Profile `yaml:",inline"`
}

// OwnerSpec nests everything an owner holds. Accounts are referenced by email,
// contracts by weekly hours and tasks by name.
type OwnerSpec struct {
	Account   string         `yaml:"account"`
	Contracts []int          `yaml:"contracts"`
	Tasks     []string       `yaml:"tasks"`
	Employees []EmployeeSpec `yaml:"employees"`
	Schedules []ScheduleSpec `yaml:"schedules"`
}

type EmployeeSpec struct {
	Account       string `yaml:"account"`
	ContractHours int    `yaml:"contract_hours"`
	StartDate     string `yaml:"start_date"`
	EndDate       string `yaml:"end_date"`
}

type ScheduleSpec struct {
	Date   string      `yaml:"date"`
	Start  string      `yaml:"start"`
	End    string      `yaml:"end"`
	Shifts []ShiftSpec `yaml:"shifts"`
}

// ShiftSpec.Date defaults to the enclosing schedule's date.
type ShiftSpec struct {
	Employee string `yaml:"employee"`
	Task     string `yaml:"task"`
	Date     string `yaml:"date"`
	Start    string `yaml:"start"`
	End      string `yaml:"end"`
}

// Decode rejects unknown keys so typos surface before anything is written.
func Decode(r io.Reader) (*Document, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("decode seed document: %w", err)
	}
	return &doc, nil
}

func LoadFile(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Decode(bytes.NewReader(raw))
}
