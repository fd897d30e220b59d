// Package services holds the business rules for the workspace backend. The
// service layer is the only place that raises domain errors; it reads the
// full project collection through the repository for every operation and
// persists via save/delete, so a failure during the in-memory phase leaves
// the on-disk document untouched.
package services

import (
	"sort"
	"strings"

	"loop-backend/internal/apierr"
	"loop-backend/internal/models"
	"loop-backend/internal/repository"
)

type ProjectService struct {
	repo *repository.ProjectRepository
}

func NewProjectService(repo *repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// ListProjects returns every project, most recently updated first.
func (s *ProjectService) ListProjects() ([]map[string]interface{}, error) {
	projects, err := s.repo.List()
	if err != nil {
		return nil, err
	}

	sort.SliceStable(projects, func(i, j int) bool {
		return projects[i].UpdatedAt.After(projects[j].UpdatedAt)
	})

	docs := make([]map[string]interface{}, 0, len(projects))
	for _, project := range projects {
		docs = append(docs, project.Document())
	}
	return docs, nil
}

// CreateProject builds a project from the payload. A caller-supplied id that
// collides with an existing project is a conflict; an omitted or falsy id is
// replaced with a fresh one.
func (s *ProjectService) CreateProject(payload map[string]interface{}) (map[string]interface{}, error) {
	if payload == nil {
		payload = map[string]interface{}{}
	}

	projectID, _ := payload["id"].(string)
	if projectID == "" {
		projectID = s.repo.NextID()
	}

	existing, err := s.repo.Get(projectID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apierr.Conflict("Project '%s' already exists.", projectID)
	}

	name, _ := payload["name"].(string)
	project := models.NewProject(projectID, name)

	if description, ok := payload["description"].(string); ok {
		project.Description = &description
	}
	if targetModel, ok := lookupString(payload, "targetModel", "target_model"); ok {
		project.TargetModel = &targetModel
	}
	if settings, ok := payload["settings"].(map[string]interface{}); ok {
		for k, v := range settings {
			project.Settings[k] = v
		}
	}

	if rawAssets, ok := payload["assets"]; ok && rawAssets != nil {
		assets, err := s.parseAssets(rawAssets)
		if err != nil {
			return nil, err
		}
		project.Assets = assets
	}

	if models.HasTimelineKeys(payload) {
		project.Timeline = models.TimelineFromDocument(payload)
	}

	if err := s.repo.Save(project); err != nil {
		return nil, err
	}
	return project.Document(), nil
}

// GetProject returns the external representation of a project.
func (s *ProjectService) GetProject(projectID string) (map[string]interface{}, error) {
	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}
	return project.Document(), nil
}

// UpdateProject applies a non-empty patch. An assets key replaces the asset
// collection wholesale; settings merge rather than replace.
func (s *ProjectService) UpdateProject(projectID string, patch map[string]interface{}) (map[string]interface{}, error) {
	if len(patch) == 0 {
		return nil, apierr.Validation("Update payload cannot be empty.")
	}

	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}

	if rawAssets, ok := patch["assets"]; ok {
		assets, err := s.parseAssets(rawAssets)
		if err != nil {
			return nil, err
		}
		project.ReplaceAssets(assets)
	}

	project.ApplyUpdate(patch)

	if err := s.repo.Save(*project); err != nil {
		return nil, err
	}
	return project.Document(), nil
}

// DeleteProject removes the project and, with it, every asset it owns.
func (s *ProjectService) DeleteProject(projectID string) error {
	if _, err := s.getProject(projectID); err != nil {
		return err
	}
	return s.repo.Delete(projectID)
}

// ListAssets returns the project's assets in collection order.
func (s *ProjectService) ListAssets(projectID string) ([]map[string]interface{}, error) {
	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}

	docs := make([]map[string]interface{}, 0, len(project.Assets))
	for _, asset := range project.Assets {
		docs = append(docs, asset.Document())
	}
	return docs, nil
}

// GetAsset returns a single asset by id.
func (s *ProjectService) GetAsset(projectID, assetID string) (map[string]interface{}, error) {
	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}

	index := project.FindAsset(assetID)
	if index < 0 {
		return nil, apierr.NotFound("Asset '%s' was not found on project '%s'.", assetID, projectID)
	}
	return project.Assets[index].Document(), nil
}

// AddAsset appends a new asset to the project. A caller-supplied id that is
// already present on the project is a conflict.
func (s *ProjectService) AddAsset(projectID string, payload map[string]interface{}) (map[string]interface{}, error) {
	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}

	if payload == nil {
		payload = map[string]interface{}{}
	}

	assetID, _ := payload["id"].(string)
	if assetID == "" {
		assetID = s.repo.NextID()
	}
	if project.FindAsset(assetID) >= 0 {
		return nil, apierr.Conflict("Asset '%s' already exists on the project.", assetID)
	}

	asset, err := s.buildAsset(assetID, payload)
	if err != nil {
		return nil, err
	}

	project.Assets = append(project.Assets, asset)
	project.Touch()

	if err := s.repo.Save(*project); err != nil {
		return nil, err
	}
	return asset.Document(), nil
}

// UpdateAsset merges a non-empty patch over the asset's current document and
// re-derives the asset from the result. The asset id is immutable.
func (s *ProjectService) UpdateAsset(projectID, assetID string, patch map[string]interface{}) (map[string]interface{}, error) {
	if len(patch) == 0 {
		return nil, apierr.Validation("Update payload cannot be empty.")
	}

	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}

	index := project.FindAsset(assetID)
	if index < 0 {
		return nil, apierr.NotFound("Asset '%s' was not found on project '%s'.", assetID, projectID)
	}

	merged := project.Assets[index].Document()
	for key, value := range patch {
		merged[key] = value
	}
	merged["id"] = assetID

	updated, err := models.AssetFromDocument(merged)
	if err != nil {
		return nil, err
	}
	updated.Touch()

	project.Assets[index] = updated
	project.Touch()

	if err := s.repo.Save(*project); err != nil {
		return nil, err
	}
	return updated.Document(), nil
}

// DeleteAsset removes an asset from the project's collection.
func (s *ProjectService) DeleteAsset(projectID, assetID string) error {
	project, err := s.getProject(projectID)
	if err != nil {
		return err
	}

	index := project.FindAsset(assetID)
	if index < 0 {
		return apierr.NotFound("Asset '%s' was not found on project '%s'.", assetID, projectID)
	}

	project.ReplaceAssets(append(project.Assets[:index:index], project.Assets[index+1:]...))

	return s.repo.Save(*project)
}

// ReplaceTimeline swaps one timeline slot wholesale. Both spellings of the
// slot name are accepted.
func (s *ProjectService) ReplaceTimeline(projectID, slotName string, payload map[string]interface{}) (map[string]interface{}, error) {
	externalKey, ok := models.TimelineSlots[slotName]
	if !ok {
		return nil, apierr.Validation("Unknown timeline '%s'.", slotName)
	}

	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}

	if payload == nil {
		payload = map[string]interface{}{}
	}
	project.Timeline.SetSlot(externalKey, payload)
	project.Touch()

	if err := s.repo.Save(*project); err != nil {
		return nil, err
	}
	return project.Timeline.Document(), nil
}

// GenerateOutline records a generation request without invoking any real
// generation process: it answers with a deterministic acknowledgment and
// restamps the project.
func (s *ProjectService) GenerateOutline(projectID string, instructions map[string]interface{}) (map[string]interface{}, error) {
	project, err := s.getProject(projectID)
	if err != nil {
		return nil, err
	}

	summary := ""
	notes := ""
	if instructions != nil {
		if raw, ok := instructions["summary"].(string); ok {
			summary = strings.TrimSpace(raw)
		}
		if raw, ok := instructions["notes"].(string); ok {
			notes = strings.TrimSpace(raw)
		}
	}
	if summary == "" {
		summary = "Creative direction for " + project.Name
	}

	project.Touch()

	result := map[string]interface{}{
		"projectId":   project.ID,
		"generatedAt": models.FormatTimestamp(project.UpdatedAt),
		"summary":     summary,
		"notes":       notes,
		"assetCount":  len(project.Assets),
	}

	if err := s.repo.Save(*project); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *ProjectService) getProject(projectID string) (*models.Project, error) {
	project, err := s.repo.Get(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apierr.NotFound("Project '%s' does not exist.", projectID)
	}
	return project, nil
}

func (s *ProjectService) parseAssets(raw interface{}) ([]models.Asset, error) {
	if raw == nil {
		return []models.Asset{}, nil
	}

	items, ok := raw.([]interface{})
	if !ok {
		return nil, apierr.Validation("Assets must be provided as a list.")
	}

	assets := make([]models.Asset, 0, len(items))
	for _, item := range items {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, apierr.Validation("Each asset must be an object.")
		}
		assetID, _ := entry["id"].(string)
		if assetID == "" {
			return nil, apierr.Validation("Each asset requires an 'id' field.")
		}
		asset, err := s.buildAsset(assetID, entry)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}
	return assets, nil
}

func (s *ProjectService) buildAsset(assetID string, payload map[string]interface{}) (models.Asset, error) {
	doc := make(map[string]interface{}, len(payload)+1)
	for key, value := range payload {
		doc[key] = value
	}
	doc["id"] = assetID

	// AssetFromDocument fills in the schema defaults and stamps missing
	// timestamps to now.
	return models.AssetFromDocument(doc)
}

func lookupString(doc map[string]interface{}, external, internal string) (string, bool) {
	if value, ok := doc[external].(string); ok {
		return value, true
	}
	if value, ok := doc[internal].(string); ok {
		return value, true
	}
	return "", false
}
