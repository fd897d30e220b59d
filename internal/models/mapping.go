package models

// The API exposes camelCase field names while the aggregate model thinks in
// snake_case. The alias table below is the single place that knows both
// spellings: deserialization accepts either (the external one wins when both
// are present) and serialization always emits the external one.

type fieldAlias struct {
	External string
	Internal string
}

var assetAliases = []fieldAlias{
	{"seedId", "seed_id"},
	{"chatContext", "chat_context"},
	{"userSelections", "user_selections"},
	{"isMaster", "is_master"},
	{"shotCount", "shot_count"},
	{"shotType", "shot_type"},
	{"shotDetails", "shot_details"},
	{"inputData", "input_data"},
	{"individualShots", "individual_shots"},
	{"createdAt", "created_at"},
	{"updatedAt", "updated_at"},
}

// Fields spelled identically in both conventions.
var assetPlainFields = []string{
	"id", "name", "type", "content", "tags", "summary", "metadata",
	"questions", "outputs", "lineage",
}

var timelineAliases = []fieldAlias{
	{"primaryTimeline", "primary"},
	{"secondaryTimeline", "secondary"},
	{"thirdTimeline", "third"},
	{"fourthTimeline", "fourth"},
}

var projectAliases = []fieldAlias{
	{"targetModel", "target_model"},
	{"createdAt", "created_at"},
	{"updatedAt", "updated_at"},
}

// assetKnownKeys holds every schema key of Asset in both spellings; anything
// outside this set lands in the extension bag.
var assetKnownKeys = buildKnownKeys(assetPlainFields, assetAliases)

func buildKnownKeys(plain []string, aliases []fieldAlias) map[string]struct{} {
	known := make(map[string]struct{}, len(plain)+2*len(aliases))
	for _, key := range plain {
		known[key] = struct{}{}
	}
	for _, alias := range aliases {
		known[alias.External] = struct{}{}
		known[alias.Internal] = struct{}{}
	}
	return known
}

// lookup returns the value for a dual-named field, preferring the external
// spelling when both are present.
func lookup(doc map[string]interface{}, external, internal string) (interface{}, bool) {
	if value, ok := doc[external]; ok {
		return value, true
	}
	if value, ok := doc[internal]; ok {
		return value, true
	}
	return nil, false
}

func stringValue(value interface{}) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

func optionalString(doc map[string]interface{}, external, internal string) *string {
	value, ok := lookup(doc, external, internal)
	if !ok || value == nil {
		return nil
	}
	if s, ok := stringValue(value); ok {
		return &s
	}
	return nil
}

func optionalInt(doc map[string]interface{}, external, internal string) *int {
	value, ok := lookup(doc, external, internal)
	if !ok || value == nil {
		return nil
	}
	switch v := value.(type) {
	case int:
		return &v
	case int64:
		n := int(v)
		return &n
	case float64:
		n := int(v)
		return &n
	}
	return nil
}

func boolField(doc map[string]interface{}, external, internal string) bool {
	value, ok := lookup(doc, external, internal)
	if !ok || value == nil {
		return false
	}
	b, _ := value.(bool)
	return b
}

func stringSlice(value interface{}) []string {
	out := []string{}
	items, ok := value.([]interface{})
	if !ok {
		if typed, ok := value.([]string); ok {
			return append(out, typed...)
		}
		return out
	}
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func anySlice(value interface{}) []interface{} {
	if items, ok := value.([]interface{}); ok {
		return append([]interface{}{}, items...)
	}
	return []interface{}{}
}

func mapValue(value interface{}) map[string]interface{} {
	if m, ok := value.(map[string]interface{}); ok {
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out
	}
	return map[string]interface{}{}
}

// optionalMap returns nil for absent or non-object values so callers can tell
// "not set" apart from "empty".
func optionalMap(value interface{}, ok bool) map[string]interface{} {
	if !ok || value == nil {
		return nil
	}
	if m, isMap := value.(map[string]interface{}); isMap {
		out := make(map[string]interface{}, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out
	}
	return nil
}
