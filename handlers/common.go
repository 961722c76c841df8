package handlers

import "encoding/json"

func jsonBody(v interface{}) ([]byte, error) {
	return json.Marshal(v)
}
