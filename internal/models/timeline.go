package models

// Timeline carries up to four named slots of UI-owned arrangement data. Slot
// contents are opaque here; only the primary slot is always present.
type Timeline struct {
	Primary   map[string]interface{}
	Secondary map[string]interface{}
	Third     map[string]interface{}
	Fourth    map[string]interface{}
}

// DefaultTimeline returns the skeleton every new project starts with.
func DefaultTimeline() Timeline {
	return Timeline{
		Primary: map[string]interface{}{
			"folders": map[string]interface{}{
				"story":         []interface{}{},
				"image":         []interface{}{},
				"text_to_video": []interface{}{},
			},
		},
	}
}

// TimelineSlots maps accepted slot names (either spelling) to the external
// document key for that slot.
var TimelineSlots = map[string]string{
	"primary":           "primaryTimeline",
	"secondary":         "secondaryTimeline",
	"third":             "thirdTimeline",
	"fourth":            "fourthTimeline",
	"primaryTimeline":   "primaryTimeline",
	"secondaryTimeline": "secondaryTimeline",
	"thirdTimeline":     "thirdTimeline",
	"fourthTimeline":    "fourthTimeline",
}

// HasTimelineKeys reports whether the document names any timeline slot in
// either spelling.
func HasTimelineKeys(doc map[string]interface{}) bool {
	for _, alias := range timelineAliases {
		if _, ok := lookup(doc, alias.External, alias.Internal); ok {
			return true
		}
	}
	return false
}

// TimelineFromDocument derives a timeline from the slot keys of a document.
// A missing primary slot becomes an empty object; the skeleton default is a
// creation-time concern, not a parsing one.
func TimelineFromDocument(doc map[string]interface{}) Timeline {
	timeline := Timeline{Primary: map[string]interface{}{}}
	if value, ok := lookup(doc, "primaryTimeline", "primary"); ok {
		timeline.Primary = mapValue(value)
	}
	timeline.Secondary = optionalMap(lookup(doc, "secondaryTimeline", "secondary"))
	timeline.Third = optionalMap(lookup(doc, "thirdTimeline", "third"))
	timeline.Fourth = optionalMap(lookup(doc, "fourthTimeline", "fourth"))
	return timeline
}

// Document renders the timeline slots with external keys, omitting absent
// optional slots.
func (t Timeline) Document() map[string]interface{} {
	doc := map[string]interface{}{
		"primaryTimeline": t.Primary,
	}
	if t.Secondary != nil {
		doc["secondaryTimeline"] = t.Secondary
	}
	if t.Third != nil {
		doc["thirdTimeline"] = t.Third
	}
	if t.Fourth != nil {
		doc["fourthTimeline"] = t.Fourth
	}
	return doc
}

// SetSlot replaces one timeline slot wholesale. The name must be one of the
// keys in TimelineSlots.
func (t *Timeline) SetSlot(externalKey string, payload map[string]interface{}) {
	switch externalKey {
	case "primaryTimeline":
		t.Primary = payload
	case "secondaryTimeline":
		t.Secondary = payload
	case "thirdTimeline":
		t.Third = payload
	case "fourthTimeline":
		t.Fourth = payload
	}
}

// Slot returns the current contents of a slot by external key.
func (t Timeline) Slot(externalKey string) map[string]interface{} {
	switch externalKey {
	case "primaryTimeline":
		return t.Primary
	case "secondaryTimeline":
		return t.Secondary
	case "thirdTimeline":
		return t.Third
	case "fourthTimeline":
		return t.Fourth
	}
	return nil
}
