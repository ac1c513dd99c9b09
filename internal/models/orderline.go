package models

// OrderLine is one customer order line as exposed by the ue_ADV_SLCoitems IDO.
// Every property travels as a string, including quantities.
type OrderLine struct {
	Item           string `json:"Item"`
	Description    string `json:"Description"`
	QtyOrderedConv string `json:"QtyOrderedConv"`
	QtyShipped     string `json:"QtyShipped"`
	CoNum          string `json:"CoNum"`

	UpdateTime string `json:"ue_Uf_update_time_from_mongoose"`
	Updator    string `json:"ue_Uf_updator_from_mongoose"`

	CoLine    string `json:"CoLine"`
	CoRelease string `json:"CoRelease"`

	// assigned by the backend on insert
	RecordDate string `json:"RecordDate"`
	RowPointer string `json:"RowPointer"`
	ItemId     string `json:"_ItemId"`
}

type LoadResponse struct {
	Items *[]OrderLine `json:"Items"`
}

// ExternalResult is the only shape handed to the web front end.
type ExternalResult struct {
	DeliveryLocation string      `json:"DeliveryLocation"`
	ShipDate         string      `json:"ShipDate"`
	ShipLocation     string      `json:"ShipLocation"`
	DeliveryStatus   string      `json:"DeliveryStatus"`
	Items            []OrderLine `json:"Items"`
}
