package models

// Property is a field descriptor inside a change-set. Modified=false marks a
// key property used to locate the record instead of a value to write.
type Property struct {
	Modified bool   `json:"Modified"`
	Value    string `json:"Value"`
	IsNull   bool   `json:"IsNull"`
	Name     string `json:"Name"`
}

type Change struct {
	Action        int        `json:"Action"`
	ItemNo        int        `json:"ItemNo"`
	UpdateLocking int        `json:"UpdateLocking"`
	Properties    []Property `json:"Properties"`
	ItemId        string     `json:"ItemId"`
}

type ChangeSet struct {
	Changes []Change `json:"Changes"`
	IDOName string   `json:"IDOName"`
}

// Parameter is one entry of the invoke-method parameter list
// (a request header or the request body).
type Parameter struct {
	Name  string `json:"Name"`
	Type  string `json:"Type"`
	Value string `json:"Value"`
}
