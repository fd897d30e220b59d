package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loop-backend/internal/apierr"
	"loop-backend/internal/repository"
)

func newTestService(t *testing.T) *ProjectService {
	t.Helper()
	repo, err := repository.NewProjectRepository(filepath.Join(t.TempDir(), "projects.json"))
	require.NoError(t, err)
	return NewProjectService(repo)
}

func createProject(t *testing.T, s *ProjectService, payload map[string]interface{}) map[string]interface{} {
	t.Helper()
	project, err := s.CreateProject(payload)
	require.NoError(t, err)
	return project
}

func TestCreateProjectWithEmptyPayload(t *testing.T) {
	s := newTestService(t)

	project := createProject(t, s, nil)

	assert.Equal(t, "Untitled Project", project["name"])
	assert.NotEmpty(t, project["id"])
	assert.Equal(t, []interface{}{}, project["assets"])

	primary, ok := project["primaryTimeline"].(map[string]interface{})
	require.True(t, ok)
	folders, ok := primary["folders"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{}, folders["story"])
	assert.Equal(t, []interface{}{}, folders["image"])
	assert.Equal(t, []interface{}{}, folders["text_to_video"])
}

func TestCreateProjectConflictOnDuplicateID(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})

	_, err := s.CreateProject(map[string]interface{}{"id": "p1"})
	require.Error(t, err)
	assert.True(t, apierr.IsConflict(err))
}

func TestCreateProjectWithOmittedIDGetsFreshID(t *testing.T) {
	s := newTestService(t)

	first := createProject(t, s, nil)
	second := createProject(t, s, nil)
	assert.NotEqual(t, first["id"], second["id"])
}

func TestCreateProjectTrimsName(t *testing.T) {
	s := newTestService(t)

	project := createProject(t, s, map[string]interface{}{"name": "   "})
	assert.Equal(t, "Untitled Project", project["name"])

	project = createProject(t, s, map[string]interface{}{"name": "  Night Drive  "})
	assert.Equal(t, "Night Drive", project["name"])
}

func TestCreateProjectWithAssetsRequiresIDs(t *testing.T) {
	s := newTestService(t)

	_, err := s.CreateProject(map[string]interface{}{
		"assets": []interface{}{map[string]interface{}{"name": "no id"}},
	})
	require.Error(t, err)
	assert.True(t, apierr.IsValidation(err))
}

func TestGetProjectNotFound(t *testing.T) {
	s := newTestService(t)

	_, err := s.GetProject("missing")
	require.Error(t, err)
	assert.True(t, apierr.IsNotFound(err))
}

func TestListProjectsSortedByRecency(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "older"})
	createProject(t, s, map[string]interface{}{"id": "newer"})

	// Updating the older project should move it to the front.
	_, err := s.UpdateProject("older", map[string]interface{}{"description": "touched"})
	require.NoError(t, err)

	projects, err := s.ListProjects()
	require.NoError(t, err)
	require.Len(t, projects, 2)
	assert.Equal(t, "older", projects[0]["id"])
}

func TestUpdateProjectEmptyPatch(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})

	_, err := s.UpdateProject("p1", map[string]interface{}{})
	require.Error(t, err)
	assert.True(t, apierr.IsValidation(err))
}

func TestUpdateProjectMergesSettings(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})

	_, err := s.UpdateProject("p1", map[string]interface{}{
		"settings": map[string]interface{}{"x": float64(1)},
	})
	require.NoError(t, err)

	project, err := s.UpdateProject("p1", map[string]interface{}{
		"settings": map[string]interface{}{"y": float64(2)},
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"x": float64(1), "y": float64(2)}, project["settings"])
}

func TestUpdateProjectReplacesAssetsWholesale(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})
	_, err := s.AddAsset("p1", map[string]interface{}{"id": "a1"})
	require.NoError(t, err)

	_, err = s.UpdateProject("p1", map[string]interface{}{
		"assets": []interface{}{
			map[string]interface{}{"id": "b1", "name": "Replacement"},
		},
	})
	require.NoError(t, err)

	assets, err := s.ListAssets("p1")
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "b1", assets[0]["id"])

	_, err = s.GetAsset("p1", "a1")
	assert.True(t, apierr.IsNotFound(err))
}

func TestUpdateProjectRefreshesUpdatedAt(t *testing.T) {
	s := newTestService(t)
	project := createProject(t, s, map[string]interface{}{"id": "p1"})
	before := project["updatedAt"].(string)

	updated, err := s.UpdateProject("p1", map[string]interface{}{"description": "x"})
	require.NoError(t, err)
	after := updated["updatedAt"].(string)

	assert.GreaterOrEqual(t, after, before)
	assert.GreaterOrEqual(t, after, updated["createdAt"].(string))
}

func TestDeleteProjectCascades(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})
	_, err := s.AddAsset("p1", map[string]interface{}{"id": "a1"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteProject("p1"))

	_, err = s.GetProject("p1")
	assert.True(t, apierr.IsNotFound(err))

	// Listing assets of a deleted project is NotFound, never an empty list.
	_, err = s.ListAssets("p1")
	assert.True(t, apierr.IsNotFound(err))

	_, err = s.GetAsset("p1", "a1")
	assert.True(t, apierr.IsNotFound(err))
}

func TestDeleteProjectNotFound(t *testing.T) {
	s := newTestService(t)

	err := s.DeleteProject("missing")
	require.Error(t, err)
	assert.True(t, apierr.IsNotFound(err))
}

func TestAddAssetDefaults(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})

	asset, err := s.AddAsset("p1", map[string]interface{}{"id": "a1"})
	require.NoError(t, err)

	assert.Equal(t, "a1", asset["id"])
	assert.Equal(t, "Untitled Asset", asset["name"])
	assert.Equal(t, "primary", asset["type"])
	assert.Equal(t, "", asset["content"])
}

func TestAddAssetDuplicateIDConflicts(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})

	_, err := s.AddAsset("p1", map[string]interface{}{"id": "a1"})
	require.NoError(t, err)

	_, err = s.AddAsset("p1", map[string]interface{}{"id": "a1"})
	require.Error(t, err)
	assert.True(t, apierr.IsConflict(err))
}

func TestAddAssetGeneratesIDWhenOmitted(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})

	asset, err := s.AddAsset("p1", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, asset["id"])
}

func TestAddAssetProjectNotFound(t *testing.T) {
	s := newTestService(t)

	_, err := s.AddAsset("missing", map[string]interface{}{"id": "a1"})
	require.Error(t, err)
	assert.True(t, apierr.IsNotFound(err))
}

func TestUpdateAssetMergesPatch(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})
	_, err := s.AddAsset("p1", map[string]interface{}{"id": "a1", "name": "Before", "content": "body"})
	require.NoError(t, err)

	updated, err := s.UpdateAsset("p1", "a1", map[string]interface{}{"name": "After"})
	require.NoError(t, err)

	assert.Equal(t, "After", updated["name"])
	assert.Equal(t, "body", updated["content"], "unpatched fields survive the merge")
}

func TestUpdateAssetIDIsImmutable(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})
	_, err := s.AddAsset("p1", map[string]interface{}{"id": "a1"})
	require.NoError(t, err)

	updated, err := s.UpdateAsset("p1", "a1", map[string]interface{}{"id": "hijacked"})
	require.NoError(t, err)
	assert.Equal(t, "a1", updated["id"])

	_, err = s.GetAsset("p1", "a1")
	require.NoError(t, err)
}

func TestUpdateAssetEmptyPatch(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})
	_, err := s.AddAsset("p1", map[string]interface{}{"id": "a1"})
	require.NoError(t, err)

	_, err = s.UpdateAsset("p1", "a1", nil)
	require.Error(t, err)
	assert.True(t, apierr.IsValidation(err))
}

func TestUpdateAssetNotFound(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})

	_, err := s.UpdateAsset("p1", "ghost", map[string]interface{}{"name": "x"})
	require.Error(t, err)
	assert.True(t, apierr.IsNotFound(err))
}

func TestDeleteAssetThenLookupFails(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})
	_, err := s.AddAsset("p1", map[string]interface{}{"id": "a1"})
	require.NoError(t, err)

	require.NoError(t, s.DeleteAsset("p1", "a1"))

	err = s.DeleteAsset("p1", "a1")
	require.Error(t, err)
	assert.True(t, apierr.IsNotFound(err))
}

func TestReplaceTimelineSlot(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})

	payload := map[string]interface{}{"tracks": []interface{}{}}
	timeline, err := s.ReplaceTimeline("p1", "secondary", payload)
	require.NoError(t, err)
	assert.Equal(t, payload, timeline["secondaryTimeline"])

	project, err := s.GetProject("p1")
	require.NoError(t, err)
	assert.Equal(t, payload, project["secondaryTimeline"])

	// primary stays untouched
	primary, ok := project["primaryTimeline"].(map[string]interface{})
	require.True(t, ok)
	assert.Contains(t, primary, "folders")
}

func TestReplaceTimelineAcceptsExternalSpelling(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})

	_, err := s.ReplaceTimeline("p1", "thirdTimeline", map[string]interface{}{"v": float64(1)})
	require.NoError(t, err)

	project, err := s.GetProject("p1")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"v": float64(1)}, project["thirdTimeline"])
}

func TestReplaceTimelineUnknownSlot(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1"})

	_, err := s.ReplaceTimeline("p1", "fifth", map[string]interface{}{})
	require.Error(t, err)
	assert.True(t, apierr.IsValidation(err))
}

func TestGenerateOutlineAcknowledgment(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1", "name": "Noir Short"})
	_, err := s.AddAsset("p1", map[string]interface{}{"id": "a1"})
	require.NoError(t, err)

	result, err := s.GenerateOutline("p1", map[string]interface{}{
		"summary": "  opening act  ",
		"notes":   "keep it moody",
	})
	require.NoError(t, err)

	assert.Equal(t, "p1", result["projectId"])
	assert.Equal(t, "opening act", result["summary"])
	assert.Equal(t, "keep it moody", result["notes"])
	assert.Equal(t, 1, result["assetCount"])
	assert.NotEmpty(t, result["generatedAt"])
}

func TestGenerateOutlineSummaryFallback(t *testing.T) {
	s := newTestService(t)
	createProject(t, s, map[string]interface{}{"id": "p1", "name": "Noir Short"})

	result, err := s.GenerateOutline("p1", nil)
	require.NoError(t, err)
	assert.Equal(t, "Creative direction for Noir Short", result["summary"])
	assert.Equal(t, 0, result["assetCount"])
}

func TestGenerateOutlineRestampsProject(t *testing.T) {
	s := newTestService(t)
	project := createProject(t, s, map[string]interface{}{"id": "p1"})
	before := project["updatedAt"].(string)

	_, err := s.GenerateOutline("p1", nil)
	require.NoError(t, err)

	after, err := s.GetProject("p1")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, after["updatedAt"].(string), before)
}

func TestMutationsPersistAcrossServiceInstances(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "projects.json")

	repo, err := repository.NewProjectRepository(path)
	require.NoError(t, err)
	s := NewProjectService(repo)
	createProject(t, s, map[string]interface{}{"id": "p1", "name": "Durable"})

	repo2, err := repository.NewProjectRepository(path)
	require.NoError(t, err)
	s2 := NewProjectService(repo2)

	project, err := s2.GetProject("p1")
	require.NoError(t, err)
	assert.Equal(t, "Durable", project["name"])
}
