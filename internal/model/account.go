// Package model holds the data types shared between layers.
package model

// Account is a row of the account_management table.
type Account struct {
	ID   int64
	Name string
}

// AccountInfo is the response body of GET /accounts.
type AccountInfo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
