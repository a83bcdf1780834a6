package domain

import (
	"github.com/yungbote/shiftplan-backend/internal/domain/account"
	"github.com/yungbote/shiftplan-backend/internal/domain/roster"
	"github.com/yungbote/shiftplan-backend/internal/domain/scheduling"
)

type Account = account.Account
type AccountProfile = account.Profile

type Owner = roster.Owner
type Contract = roster.Contract
type Employee = roster.Employee
type Task = roster.Task

type Schedule = scheduling.Schedule
type Shift = scheduling.Shift
