package account

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Account struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password string    `gorm:"not null;column:password" json:"-"`
	Name     string    `gorm:"column:name" json:"name"`

	CompanyName          string `gorm:"column:company_name" json:"company_name"`
	FirstName            string `gorm:"column:first_name" json:"first_name"`
	LastName             string `gorm:"column:last_name" json:"last_name"`
	StreetName           string `gorm:"column:street_name" json:"street_name"`
	StreetNumber         string `gorm:"column:street_number" json:"street_number"`
	City                 string `gorm:"column:city" json:"city"`
	ZipCode              string `gorm:"column:zip_code" json:"zip_code"`
	ProvinceName         string `gorm:"column:province_name" json:"province_name"`
	RegionName           string `gorm:"column:region_name" json:"region_name"`
	CountryName          string `gorm:"column:country_name" json:"country_name"`
	SocialSecurityNumber string `gorm:"column:social_security_number" json:"social_security_number"`
	VATNumber            string `gorm:"column:vat_number" json:"vat_number"`
	LegalMail            string `gorm:"column:legal_mail" json:"legal_mail"`
	BillingCode          string `gorm:"column:billing_code" json:"billing_code"`
	MobilePhone          string `gorm:"column:mobile_phone" json:"mobile_phone"`
	Phone                string `gorm:"column:phone" json:"phone"`

	IsStaff     bool       `gorm:"not null;default:false;column:is_staff" json:"is_staff"`
	IsActive    bool       `gorm:"not null;default:true;column:is_active" json:"is_active"`
	IsSuperuser bool       `gorm:"not null;default:false;column:is_superuser" json:"is_superuser"`
	LastLogin   *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "account" }

func (a *Account) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// Profile is the editable contact/billing subset of an Account.
type Profile struct {
	CompanyName          string `json:"company_name" yaml:"company_name"`
	FirstName            string `json:"first_name" yaml:"first_name"`
	LastName             string `json:"last_name" yaml:"last_name"`
	StreetName           string `json:"street_name" yaml:"street_name"`
	StreetNumber         string `json:"street_number" yaml:"street_number"`
	City                 string `json:"city" yaml:"city"`
	ZipCode              string `json:"zip_code" yaml:"zip_code"`
	ProvinceName         string `json:"province_name" yaml:"province_name"`
	RegionName           string `json:"region_name" yaml:"region_name"`
	CountryName          string `json:"country_name" yaml:"country_name"`
	SocialSecurityNumber string `json:"social_security_number" yaml:"social_security_number"`
	VATNumber            string `json:"vat_number" yaml:"vat_number"`
	LegalMail            string `json:"legal_mail" yaml:"legal_mail"`
	BillingCode          string `json:"billing_code" yaml:"billing_code"`
	MobilePhone          string `json:"mobile_phone" yaml:"mobile_phone"`
	Phone                string `json:"phone" yaml:"phone"`
}

// ApplyProfile copies p onto a.
func (a *Account) ApplyProfile(p Profile) {
	a.CompanyName = p.CompanyName
	a.FirstName = p.FirstName
	a.LastName = p.LastName
	a.StreetName = p.StreetName
	a.StreetNumber = p.StreetNumber
	a.City = p.City
	a.ZipCode = p.ZipCode
	a.ProvinceName = p.ProvinceName
	a.RegionName = p.RegionName
	a.CountryName = p.CountryName
	a.SocialSecurityNumber = p.SocialSecurityNumber
	a.VATNumber = p.VATNumber
	a.LegalMail = p.LegalMail
	a.BillingCode = p.BillingCode
	a.MobilePhone = p.MobilePhone
	a.Phone = p.Phone
}
