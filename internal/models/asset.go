package models

import "time"

const (
	DefaultAssetName = "Untitled Asset"
	DefaultAssetType = "primary"
)

// Asset is a creative artifact owned by exactly one project. Fields outside
// the known schema are preserved verbatim in Extra and merged back into the
// document on output.
type Asset struct {
	ID              string
	Name            string
	Type            string
	Content         string
	SeedID          *string
	Tags            []string
	Summary         *string
	Metadata        map[string]interface{}
	Questions       []interface{}
	ChatContext     []interface{}
	UserSelections  map[string]interface{}
	Outputs         []string
	IsMaster        bool
	Lineage         []string
	ShotCount       *int
	ShotType        *string
	ShotDetails     map[string]interface{}
	InputData       map[string]interface{}
	IndividualShots []interface{}
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Extra           map[string]interface{}
}

// AssetFromDocument parses an asset from a document in either naming
// convention. The external spelling wins when both are present.
func AssetFromDocument(doc map[string]interface{}) (Asset, error) {
	createdAt, err := timestampField(doc, "createdAt", "created_at")
	if err != nil {
		return Asset{}, err
	}
	updatedAt, err := timestampField(doc, "updatedAt", "updated_at")
	if err != nil {
		return Asset{}, err
	}

	asset := Asset{
		Name:            DefaultAssetName,
		Type:            DefaultAssetType,
		Content:         "",
		Tags:            []string{},
		Metadata:        map[string]interface{}{},
		Questions:       []interface{}{},
		ChatContext:     []interface{}{},
		UserSelections:  map[string]interface{}{},
		Outputs:         []string{},
		Lineage:         []string{},
		IndividualShots: []interface{}{},
		CreatedAt:       createdAt,
		UpdatedAt:       updatedAt,
		Extra:           map[string]interface{}{},
	}

	if id, ok := doc["id"].(string); ok {
		asset.ID = id
	}
	if name, ok := doc["name"].(string); ok {
		asset.Name = name
	}
	if typ, ok := doc["type"].(string); ok {
		asset.Type = typ
	}
	if content, ok := doc["content"].(string); ok {
		asset.Content = content
	}
	if tags, ok := doc["tags"]; ok {
		asset.Tags = stringSlice(tags)
	}
	if outputs, ok := doc["outputs"]; ok {
		asset.Outputs = stringSlice(outputs)
	}
	if lineage, ok := doc["lineage"]; ok {
		asset.Lineage = stringSlice(lineage)
	}
	if metadata, ok := doc["metadata"]; ok {
		asset.Metadata = mapValue(metadata)
	}
	if questions, ok := doc["questions"]; ok {
		asset.Questions = anySlice(questions)
	}

	asset.SeedID = optionalString(doc, "seedId", "seed_id")
	asset.Summary = optionalString(doc, "summary", "summary")
	asset.IsMaster = boolField(doc, "isMaster", "is_master")
	asset.ShotCount = optionalInt(doc, "shotCount", "shot_count")
	asset.ShotType = optionalString(doc, "shotType", "shot_type")
	asset.ShotDetails = optionalMap(lookup(doc, "shotDetails", "shot_details"))
	asset.InputData = optionalMap(lookup(doc, "inputData", "input_data"))

	if value, ok := lookup(doc, "chatContext", "chat_context"); ok {
		asset.ChatContext = anySlice(value)
	}
	if value, ok := lookup(doc, "userSelections", "user_selections"); ok {
		asset.UserSelections = mapValue(value)
	}
	if value, ok := lookup(doc, "individualShots", "individual_shots"); ok {
		asset.IndividualShots = anySlice(value)
	}

	for key, value := range doc {
		if _, known := assetKnownKeys[key]; !known {
			asset.Extra[key] = value
		}
	}

	return asset, nil
}

// Document renders the asset in the external naming convention. Optional
// fields are omitted when unset; extension-bag fields are merged back in.
func (a Asset) Document() map[string]interface{} {
	doc := map[string]interface{}{
		"id":             a.ID,
		"name":           a.Name,
		"type":           a.Type,
		"content":        a.Content,
		"tags":           a.Tags,
		"summary":        nil,
		"metadata":       a.Metadata,
		"questions":      a.Questions,
		"chatContext":    a.ChatContext,
		"userSelections": a.UserSelections,
		"outputs":        a.Outputs,
		"lineage":        a.Lineage,
		"createdAt":      FormatTimestamp(a.CreatedAt),
		"updatedAt":      FormatTimestamp(a.UpdatedAt),
	}

	if a.Summary != nil {
		doc["summary"] = *a.Summary
	}
	if a.SeedID != nil {
		doc["seedId"] = *a.SeedID
	}
	if a.IsMaster {
		doc["isMaster"] = true
	}
	if a.ShotCount != nil {
		doc["shotCount"] = *a.ShotCount
	}
	if a.ShotType != nil {
		doc["shotType"] = *a.ShotType
	}
	if a.ShotDetails != nil {
		doc["shotDetails"] = a.ShotDetails
	}
	if a.InputData != nil {
		doc["inputData"] = a.InputData
	}
	if len(a.IndividualShots) > 0 {
		doc["individualShots"] = a.IndividualShots
	}

	for key, value := range a.Extra {
		doc[key] = value
	}

	return doc
}

// Touch refreshes the asset's modification timestamp.
func (a *Asset) Touch() {
	a.UpdatedAt = utcNow()
}
