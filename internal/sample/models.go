package sample

import "time"

// Customer is the model the sample pages are rendered for.
type Customer struct {
	ID        int
	FirstName string    `display:"First name" prompt:"Enter customer's first name" description:"The customer's first name." validate:"required,max=100"`
	LastName  string    `display:"Last name" prompt:"Enter customer's last name" description:"The customer's last name." validate:"required,max=100"`
	BirthDate time.Time `display:"Birth date" description:"The customer's date of birth." datatype:"date"`
	Country   string    `prompt:"Start typing a country"`
	Notes     string    `datatype:"multilinetext" description:"Anything worth remembering."`
	Orders    []Order
}

// Order is a customer order.
type Order struct {
	ID         int
	CustomerID int       `display:"Placed By" description:"The customer that placed the order."`
	PlacedOn   time.Time `display:"Placed on" description:"The date and time the order was placed."`
	Total      float64   `datatype:"currency"`
}

// NewCustomer returns the customer shown on the sample pages.
func NewCustomer() *Customer {
	customer := &Customer{
		ID:        1,
		FirstName: "Elizabeth",
		LastName:  "Edwards",
		BirthDate: time.Date(2005, 8, 8, 0, 0, 0, 0, time.UTC),
		Country:   "New Zealand",
	}
	customer.Orders = []Order{
		{ID: 1, CustomerID: customer.ID, PlacedOn: time.Date(2017, 2, 4, 15, 22, 0, 0, time.UTC), Total: 342.39},
		{ID: 2, CustomerID: customer.ID, PlacedOn: time.Date(2017, 3, 21, 11, 4, 0, 0, time.UTC), Total: 1983.44},
	}
	return customer
}

// DefaultCountries feeds the country datalist.
func DefaultCountries() []string {
	return []string{"Australia", "Canada", "Germany", "New Zealand", "United Kingdom", "United States"}
}
