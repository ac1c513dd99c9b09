package ido

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/TWRT/arrival-location/internal/models"
)

// ParseLoadResponse extracts the order lines of a load response body.
func ParseLoadResponse(raw string) ([]models.OrderLine, error) {
	var resp models.LoadResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, &ParseError{Err: err}
	}
	if resp.Items == nil {
		return nil, &ParseError{Err: errors.New(`missing "Items" array`)}
	}
	return *resp.Items, nil
}

// ResultContext carries the delivery metadata the caller already holds.
type ResultContext struct {
	DeliveryLocation string
	ShipDate         string
	ShipLocation     string
	DeliveryStatus   string
}

func ToExternalResult(records []models.OrderLine, rc ResultContext) models.ExternalResult {
	if records == nil {
		records = []models.OrderLine{}
	}
	return models.ExternalResult{
		DeliveryLocation: rc.DeliveryLocation,
		ShipDate:         rc.ShipDate,
		ShipLocation:     rc.ShipLocation,
		DeliveryStatus:   rc.DeliveryStatus,
		Items:            records,
	}
}

// MarshalResult renders res the way the web layer reads it.
func MarshalResult(res models.ExternalResult) (string, error) {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal external result: %w", err)
	}
	return string(data), nil
}
