package routes

import (
	"encoding/json"

	"gorm.io/datatypes"
)

// appendJSONString appends a string to a JSON-array column, tolerating a
// null or malformed existing value.
func appendJSONString(col datatypes.JSON, value string) datatypes.JSON {
	var items []string
	if col != nil {
		json.Unmarshal(col, &items)
	}
	items = append(items, value)
	out, err := json.Marshal(items)
	if err != nil {
		return col
	}
	return datatypes.JSON(out)
}
