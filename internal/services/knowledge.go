package services

import (
	"os"
	"path/filepath"
	"strings"
)

// knowledgeFiles maps response keys to the markdown note files backing them.
// Order matters for the concatenated fullContext section.
var knowledgeFiles = []struct {
	Key      string
	Filename string
}{
	{"cameraMovements", "camera_movement_notes.md"},
	{"filmTechniques", "film_techniques_notes.md"},
	{"storyStructures", "story_structures_notes.md"},
	{"sceneWritingTechniques", "scene_writing_and_opening_hooks.md"},
	{"screenplayArchetypes", "screenplay_conventions_and_archetypes.md"},
	{"screenwritingDay6", "screenwriting_day6_notes.md"},
	{"screenwritingLogline", "screenwriting_logline_plot_exposure_notes.md"},
	{"storyIdeaGeneration", "story_idea_generation_notes.md"},
	{"subtextNotes", "subtext_notes.md"},
	{"fracturedLoop", "fractured_loop_build_system_notes.md"},
}

// KnowledgeService serves the film production knowledge base: a directory of
// markdown notes flattened into structured topic lists.
type KnowledgeService struct {
	basePath string
}

func NewKnowledgeService(basePath string) *KnowledgeService {
	return &KnowledgeService{basePath: basePath}
}

// Load reads every known note file and returns topic lists keyed by camelCase
// topic, plus a fullContext field concatenating the raw markdown. Missing
// files read as empty.
func (s *KnowledgeService) Load() map[string]interface{} {
	payload := make(map[string]interface{}, len(knowledgeFiles)+1)
	fullContextParts := []string{"# Film Production Knowledge Base\n"}

	for _, file := range knowledgeFiles {
		markdown := s.readMarkdown(file.Filename)
		payload[file.Key] = extractListItems(markdown)

		title := strings.TrimSuffix(file.Filename, ".md")
		title = titleCase(strings.ReplaceAll(title, "_", " "))
		fullContextParts = append(fullContextParts, "## "+title+"\n"+markdown+"\n")
	}

	payload["fullContext"] = strings.TrimSpace(strings.Join(fullContextParts, "\n"))
	return payload
}

func (s *KnowledgeService) readMarkdown(relativePath string) string {
	data, err := os.ReadFile(filepath.Join(s.basePath, relativePath))
	if err != nil {
		return ""
	}
	return string(data)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// extractListItems pulls bullet items and second-level headings out of the
// markdown, deduplicated and capped at a sane label length.
func extractListItems(markdown string) []string {
	items := []string{}
	seen := map[string]struct{}{}

	add := func(candidate string) {
		candidate = strings.TrimSpace(candidate)
		if len(candidate) == 0 || len(candidate) >= 80 {
			return
		}
		if _, dup := seen[candidate]; dup {
			return
		}
		seen[candidate] = struct{}{}
		items = append(items, candidate)
	}

	for _, line := range strings.Split(markdown, "\n") {
		stripped := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(stripped, "- "), strings.HasPrefix(stripped, "* "):
			candidate := stripped[2:]
			if colon := strings.Index(candidate, ":"); colon >= 0 {
				candidate = candidate[:colon]
			}
			add(candidate)
		case strings.HasPrefix(stripped, "## "):
			add(stripped[3:])
		}
	}

	return items
}
