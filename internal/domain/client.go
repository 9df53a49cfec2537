package domain

import "time"

type ClientType string

const (
	ClientTypeIndividual ClientType = "individual"
	ClientTypeCompany    ClientType = "company"
)

func (t ClientType) Valid() bool {
	return t == ClientTypeIndividual || t == ClientTypeCompany
}

type Client struct {
	ID          int32      `json:"id"`
	Email       string     `json:"email"`
	PhoneNumber string     `json:"phone_number"`
	Type        ClientType `json:"type"`
}

type IndClient struct {
	ClientID              int32      `json:"client_id"`
	LastName              string     `json:"last_name"`
	FirstName             string     `json:"first_name"`
	Patronymic            string     `json:"patronymic,omitempty"`
	PassportNumber        string     `json:"passport_number"`
	PassportIssuedBy      string     `json:"passport_issued_by"`
	PassportIssuedDate    time.Time  `json:"passport_issued_date"`
	PassportCode          string     `json:"passport_code"`
	BirthDate             time.Time  `json:"birth_date"`
	RegistrationAddressID *int32     `json:"registration_address_id,omitempty"`
	ActualAddressID       *int32     `json:"actual_address_id,omitempty"`
	INN                   string     `json:"inn,omitempty"`
}

type CompClient struct {
	ClientID           int32      `json:"client_id"`
	CompanyName        string     `json:"company_name"`
	AddressID          *int32     `json:"address_id,omitempty"`
	INN                string     `json:"inn"`
	KPP                string     `json:"kpp"`
	OGRN               string     `json:"ogrn"`
	BankName           string     `json:"bank_name"`
	BankBIK            string     `json:"bank_bik"`
	BankAccount        string     `json:"bank_account"`
	BankCorr           string     `json:"bank_corr"`
	DirectorFirstName  string     `json:"director_first_name"`
	DirectorLastName   string     `json:"director_last_name"`
	DirectorPatronymic string     `json:"director_patronymic,omitempty"`
	Position           string     `json:"position"`
	AttorneyNumber     string     `json:"attorney_number,omitempty"`
	AttorneyDate       *time.Time `json:"attorney_date,omitempty"`
}

type Address struct {
	ID          int32  `json:"id"`
	Region      string `json:"region"`
	City        string `json:"city"`
	Street      string `json:"street"`
	House       string `json:"house"`
	Building    string `json:"building,omitempty"`
	PostalCode  string `json:"postal_code"`
	FullAddress string `json:"full_address"`
}
