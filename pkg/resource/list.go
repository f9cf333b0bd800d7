package resource

import (
	"encoding/json"
	"sort"
)

// MarshalList serialises a resource slice sorted by id.
func MarshalList(list []Resource) ([]byte, error) {
	sorted := make([]Resource, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ID < sorted[j].ID
	})
	return json.MarshalIndent(sorted, "", "  ")
}

// UnmarshalList deserialises a resource slice. A legacy array of names is
// upgraded to staff resources whose id is the name.
func UnmarshalList(data []byte) ([]Resource, error) {
	if len(data) == 0 {
		return []Resource{}, nil
	}
	var list []Resource
	if err := json.Unmarshal(data, &list); err == nil {
		for i := range list {
			if list[i].Type == "" {
				list[i].Type = TypeStaff
			}
		}
		return list, nil
	}
	var legacy []string
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, err
	}
	list = make([]Resource, 0, len(legacy))
	for _, name := range legacy {
		list = append(list, Resource{ID: name, Name: name, Type: TypeStaff})
	}
	return list, nil
}
