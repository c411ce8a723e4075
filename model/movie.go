package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

type Movie struct {
	Id          string    `json:"_id"`
	Title       string    `json:"title"`
	Poster      string    `json:"poster"`
	Rating      Rating    `json:"rating"`
	Genre       []string  `json:"genre"`
	Director    string    `json:"director"`
	Writer      []string  `json:"writer"`
	Duration    int       `json:"duration"`
	Synopsis    string    `json:"synopsis"`
	ReleaseDate string    `json:"releaseDate"`
	Cinema      string    `json:"cinema"`
	Showtimes   Showtimes `json:"showtimes"`
}

type Showtimes struct {
	Dates []string            `json:"dates"`
	Times map[string][]string `json:"times"`
}

// Rating accepts both numeric and string ratings from the API.
type Rating string

func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*r = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*r = Rating(strings.TrimSpace(s))
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*r = Rating(strconv.FormatFloat(f, 'f', -1, 64))
	return nil
}

func (r Rating) String() string {
	return string(r)
}

// UnmarshalJSON accepts writer as either a list or a single string.
func (m *Movie) UnmarshalJSON(data []byte) error {
	type Alias Movie
	aux := struct {
		*Alias
		Writer json.RawMessage `json:"writer"`
	}{Alias: (*Alias)(m)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	m.Writer = nil
	raw := bytes.TrimSpace(aux.Writer)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	if raw[0] == '[' {
		return json.Unmarshal(raw, &m.Writer)
	}
	var single string
	if err := json.Unmarshal(raw, &single); err != nil {
		return err
	}
	if single = strings.TrimSpace(single); single != "" {
		m.Writer = []string{single}
	}
	return nil
}
