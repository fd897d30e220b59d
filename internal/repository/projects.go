// Package repository translates project aggregates to and from the durable
// document store. It knows nothing about business rules: absent projects are
// not errors here, and existence checks belong to the service layer.
package repository

import (
	"fmt"

	"github.com/google/uuid"

	"loop-backend/internal/models"
	"loop-backend/internal/storage"
)

const projectsKey = "projects"

type ProjectRepository struct {
	store *storage.Store
}

// NewProjectRepository opens (or seeds) the backing store at dataFile.
func NewProjectRepository(dataFile string) (*ProjectRepository, error) {
	store, err := storage.New(dataFile, map[string]interface{}{projectsKey: []interface{}{}})
	if err != nil {
		return nil, err
	}
	return &ProjectRepository{store: store}, nil
}

// List returns every stored project. Ordering is a service-level policy.
func (r *ProjectRepository) List() ([]models.Project, error) {
	doc, err := r.store.Read()
	if err != nil {
		return nil, err
	}

	rawProjects, _ := doc[projectsKey].([]interface{})
	projects := make([]models.Project, 0, len(rawProjects))
	for _, item := range rawProjects {
		entry, ok := item.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("corrupt project entry in %s", r.store.Path())
		}
		project, err := models.ProjectFromDocument(entry)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	return projects, nil
}

// Get returns the project with the given id, or nil when absent.
func (r *ProjectRepository) Get(id string) (*models.Project, error) {
	projects, err := r.List()
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].ID == id {
			return &projects[i], nil
		}
	}
	return nil, nil
}

// Save upserts the project by id, rewriting the whole collection.
func (r *ProjectRepository) Save(project models.Project) error {
	doc, err := r.store.Read()
	if err != nil {
		return err
	}

	rawProjects, _ := doc[projectsKey].([]interface{})
	replaced := false
	for i, item := range rawProjects {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if entryID, _ := entry["id"].(string); entryID == project.ID {
			rawProjects[i] = project.Document()
			replaced = true
			break
		}
	}
	if !replaced {
		rawProjects = append(rawProjects, project.Document())
	}

	doc[projectsKey] = rawProjects
	return r.store.Write(doc)
}

// Delete removes the project with the given id. Deleting an absent project
// is a no-op at this layer.
func (r *ProjectRepository) Delete(id string) error {
	doc, err := r.store.Read()
	if err != nil {
		return err
	}

	rawProjects, _ := doc[projectsKey].([]interface{})
	kept := make([]interface{}, 0, len(rawProjects))
	for _, item := range rawProjects {
		if entry, ok := item.(map[string]interface{}); ok {
			if entryID, _ := entry["id"].(string); entryID == id {
				continue
			}
		}
		kept = append(kept, item)
	}

	doc[projectsKey] = kept
	return r.store.Write(doc)
}

// NextID returns a freshly generated globally-unique identifier.
func (r *ProjectRepository) NextID() string {
	return uuid.NewString()
}
