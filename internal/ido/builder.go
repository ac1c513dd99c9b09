package ido

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/TWRT/arrival-location/internal/models"
)

const siteHeader = "X-Infor-MongooseConfig"

// RequestSpec is everything the invoke-method collaborator needs to reach
// the IDO endpoint.
type RequestSpec struct {
	HTTPMethod string
	Path       string
	Headers    []models.Parameter
	Body       string
	// ItemID is the identity the change-set was addressed to; empty on reads.
	ItemID string
}

// Parameters serializes the header and body entries as the parameter list
// argument of InvokeIONAPIMethod.
func (r RequestSpec) Parameters() (string, error) {
	params := append([]models.Parameter(nil), r.Headers...)
	if r.Body != "" {
		params = append(params, models.Parameter{Name: "Body", Type: "Body", Value: r.Body})
	}

	data, err := json.Marshal(params)
	if err != nil {
		return "", fmt.Errorf("marshal invoke parameters: %w", err)
	}
	return string(data), nil
}

type Builder struct {
	service string
	idoName string
	site    string
}

func NewBuilder(service, idoName, site string) *Builder {
	return &Builder{
		service: service,
		idoName: idoName,
		site:    site,
	}
}

func (b *Builder) IDOName() string {
	return b.idoName
}

// Build turns a property list into a load (mode read) or update request.
// criteria only apply to reads.
func (b *Builder) Build(mode Mode, props []models.Property, criteria Criteria) (RequestSpec, error) {
	if !mode.Valid() {
		return RequestSpec{}, fmt.Errorf("%w: %d", ErrUnsupportedMode, int(mode))
	}

	req := RequestSpec{
		Headers: []models.Parameter{{Name: siteHeader, Type: "Header", Value: b.site}},
	}

	if mode == ModeRead {
		names := make([]string, len(props))
		for i, p := range props {
			names[i] = p.Name
		}
		req.HTTPMethod = http.MethodGet
		req.Path = "/" + b.service + "/ido/load/" + b.idoName +
			"?properties=" + strings.Join(names, ", ") + BuildFilter(criteria)
		return req, nil
	}

	changeSet := BuildChangeSet(mode, b.idoName, props, "")
	body, err := json.MarshalIndent(changeSet, "", "  ")
	if err != nil {
		return RequestSpec{}, fmt.Errorf("marshal change set: %w", err)
	}

	req.HTTPMethod = http.MethodPost
	req.Path = "/" + b.service + "/ido/update/" + b.idoName + "?refresh=true"
	req.Body = string(body)
	req.ItemID = changeSet.Changes[0].ItemId
	return req, nil
}
