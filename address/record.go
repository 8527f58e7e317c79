package address

// Record field names, shared by the JSON body and the stored hash
const (
	FieldStreet          = "street"
	FieldApartmentNumber = "apartment_number"
	FieldCity            = "city"
	FieldStateProvince   = "state_province"
	FieldPostalCode      = "postal_code"
	FieldCountry         = "country"
)

// FieldNames lists every record field in declaration order
var FieldNames = []string{
	FieldStreet,
	FieldApartmentNumber,
	FieldCity,
	FieldStateProvince,
	FieldPostalCode,
	FieldCountry,
}

// Record is a home address. All fields are required but may be empty strings.
type Record struct {
	Street          string `json:"street"`
	ApartmentNumber string `json:"apartment_number"`
	City            string `json:"city"`
	StateProvince   string `json:"state_province"`
	PostalCode      string `json:"postal_code"`
	Country         string `json:"country"`
}

// Fields flattens r into the hash stored under the phone key
func (r Record) Fields() map[string]string {
	return map[string]string{
		FieldStreet:          r.Street,
		FieldApartmentNumber: r.ApartmentNumber,
		FieldCity:            r.City,
		FieldStateProvince:   r.StateProvince,
		FieldPostalCode:      r.PostalCode,
		FieldCountry:         r.Country,
	}
}

// recordFromFields rebuilds a Record from a stored hash. Unknown fields are ignored.
func recordFromFields(fields map[string]string) Record {
	return Record{
		Street:          fields[FieldStreet],
		ApartmentNumber: fields[FieldApartmentNumber],
		City:            fields[FieldCity],
		StateProvince:   fields[FieldStateProvince],
		PostalCode:      fields[FieldPostalCode],
		Country:         fields[FieldCountry],
	}
}
