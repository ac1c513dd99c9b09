package ido

import "github.com/TWRT/arrival-location/internal/models"

// NewItemID is the ItemId the backend expects for a record that does not exist yet.
const NewItemID = "new1"

// ResolveIdentity picks the ItemId of a change: the value of the first
// unmodified (key) property, or NewItemID when every property is modified.
func ResolveIdentity(props []models.Property) string {
	for _, p := range props {
		if !p.Modified {
			return p.Value
		}
	}
	return NewItemID
}

// BuildChangeSet wraps props in a single-change set for idoName. A non-empty
// itemID takes precedence over the identity resolved from props.
func BuildChangeSet(mode Mode, idoName string, props []models.Property, itemID string) models.ChangeSet {
	if itemID == "" {
		itemID = ResolveIdentity(props)
	}

	change := models.Change{
		Action:     int(mode),
		Properties: append([]models.Property(nil), props...),
		ItemId:     itemID,
	}

	return models.ChangeSet{
		Changes: []models.Change{change},
		IDOName: idoName,
	}
}
