package models

import (
	"strings"
	"time"

	"loop-backend/internal/apierr"
)

const DefaultProjectName = "Untitled Project"

// Project is the aggregate root: it owns its assets and timeline, and no
// asset exists outside a project.
type Project struct {
	ID          string
	Name        string
	Description *string
	TargetModel *string
	Settings    map[string]interface{}
	Assets      []Asset
	Timeline    Timeline
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProject builds a fresh project with the skeleton timeline and both
// timestamps stamped to now.
func NewProject(id, name string) Project {
	now := utcNow()
	return Project{
		ID:        id,
		Name:      NormalizeProjectName(name),
		Settings:  map[string]interface{}{},
		Assets:    []Asset{},
		Timeline:  DefaultTimeline(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NormalizeProjectName trims the name and falls back to the default title
// when nothing is left.
func NormalizeProjectName(name string) string {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return DefaultProjectName
	}
	return trimmed
}

// ProjectFromDocument parses a project from a document in either naming
// convention.
func ProjectFromDocument(doc map[string]interface{}) (Project, error) {
	createdAt, err := timestampField(doc, "createdAt", "created_at")
	if err != nil {
		return Project{}, err
	}
	updatedAt, err := timestampField(doc, "updatedAt", "updated_at")
	if err != nil {
		return Project{}, err
	}

	project := Project{
		Name:      DefaultProjectName,
		Settings:  map[string]interface{}{},
		Assets:    []Asset{},
		Timeline:  TimelineFromDocument(doc),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}

	if id, ok := doc["id"].(string); ok {
		project.ID = id
	}
	if name, ok := doc["name"].(string); ok {
		project.Name = NormalizeProjectName(name)
	}
	project.Description = optionalString(doc, "description", "description")
	project.TargetModel = optionalString(doc, "targetModel", "target_model")
	if settings, ok := doc["settings"]; ok {
		project.Settings = mapValue(settings)
	}

	if rawAssets, ok := doc["assets"].([]interface{}); ok {
		for _, item := range rawAssets {
			entry, ok := item.(map[string]interface{})
			if !ok {
				return Project{}, apierr.Validation("asset entries must be objects")
			}
			asset, err := AssetFromDocument(entry)
			if err != nil {
				return Project{}, err
			}
			project.Assets = append(project.Assets, asset)
		}
	}

	return project, nil
}

// Document renders the project in the external naming convention.
func (p Project) Document() map[string]interface{} {
	assets := make([]interface{}, 0, len(p.Assets))
	for _, asset := range p.Assets {
		assets = append(assets, asset.Document())
	}

	doc := map[string]interface{}{
		"id":          p.ID,
		"name":        p.Name,
		"description": nil,
		"targetModel": nil,
		"settings":    p.Settings,
		"assets":      assets,
		"createdAt":   FormatTimestamp(p.CreatedAt),
		"updatedAt":   FormatTimestamp(p.UpdatedAt),
	}
	if p.Description != nil {
		doc["description"] = *p.Description
	}
	if p.TargetModel != nil {
		doc["targetModel"] = *p.TargetModel
	}
	for key, value := range p.Timeline.Document() {
		doc[key] = value
	}
	return doc
}

// ReplaceAssets substitutes the asset collection wholesale.
func (p *Project) ReplaceAssets(assets []Asset) {
	if assets == nil {
		assets = []Asset{}
	}
	p.Assets = assets
	p.Touch()
}

// ApplyUpdate applies only the keys present in the patch. The name is
// trimmed and ignored if empty, settings are merged key by key rather than
// replaced, and any timeline slot key triggers a full re-derivation of the
// timeline from the patch.
func (p *Project) ApplyUpdate(patch map[string]interface{}) {
	if raw, ok := patch["name"]; ok {
		if name, ok := stringValue(raw); ok {
			if trimmed := strings.TrimSpace(name); trimmed != "" {
				p.Name = trimmed
			}
		}
	}
	if _, ok := patch["description"]; ok {
		p.Description = optionalString(patch, "description", "description")
	}
	if _, ok := lookup(patch, "targetModel", "target_model"); ok {
		p.TargetModel = optionalString(patch, "targetModel", "target_model")
	}
	if raw, ok := patch["settings"]; ok {
		merged := make(map[string]interface{}, len(p.Settings))
		for k, v := range p.Settings {
			merged[k] = v
		}
		for k, v := range mapValue(raw) {
			merged[k] = v
		}
		p.Settings = merged
	}
	if HasTimelineKeys(patch) {
		p.Timeline = TimelineFromDocument(patch)
	}
	p.Touch()
}

// Touch refreshes the project's modification timestamp.
func (p *Project) Touch() {
	p.UpdatedAt = utcNow()
}

// FindAsset returns the index of the asset with the given id, or -1.
func (p Project) FindAsset(assetID string) int {
	for i, asset := range p.Assets {
		if asset.ID == assetID {
			return i
		}
	}
	return -1
}
