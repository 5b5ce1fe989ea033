package store

import (
	"encoding/json"
	"fmt"
)

// EncodeRecord renders rec in the persisted format:
//
//	{"timestamp": <ms>, "<kind>Data": "<payload json>", "cityName": "...", "lat": .., "lon": .., "units": "..."}
func EncodeRecord(kind Kind, rec Record) ([]byte, error) {
	if err := checkKind(kind); err != nil {
		return nil, err
	}

	out := map[string]any{
		"timestamp":    rec.Timestamp,
		kind.dataKey(): rec.Data,
	}
	if rec.CityName != "" {
		out["cityName"] = rec.CityName
	}
	if rec.Lat != nil && rec.Lon != nil {
		out["lat"] = *rec.Lat
		out["lon"] = *rec.Lon
	}
	if rec.Units != "" {
		out["units"] = rec.Units
	}
	return json.Marshal(out)
}

// DecodeRecord parses data written by EncodeRecord. A record missing its
// timestamp or payload is reported as ErrCorrupt.
func DecodeRecord(kind Kind, data []byte) (Record, error) {
	if err := checkKind(kind); err != nil {
		return Record{}, err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	var rec Record

	ts, ok := raw["timestamp"]
	if !ok {
		return Record{}, fmt.Errorf("%w: missing timestamp", ErrCorrupt)
	}
	if err := json.Unmarshal(ts, &rec.Timestamp); err != nil {
		return Record{}, fmt.Errorf("%w: timestamp: %v", ErrCorrupt, err)
	}

	payload, ok := raw[kind.dataKey()]
	if !ok {
		return Record{}, fmt.Errorf("%w: missing %s", ErrCorrupt, kind.dataKey())
	}
	if err := json.Unmarshal(payload, &rec.Data); err != nil {
		return Record{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, kind.dataKey(), err)
	}

	if city, ok := raw["cityName"]; ok {
		if err := json.Unmarshal(city, &rec.CityName); err != nil {
			return Record{}, fmt.Errorf("%w: cityName: %v", ErrCorrupt, err)
		}
	}

	if units, ok := raw["units"]; ok {
		if err := json.Unmarshal(units, &rec.Units); err != nil {
			return Record{}, fmt.Errorf("%w: units: %v", ErrCorrupt, err)
		}
	}

	latRaw, hasLat := raw["lat"]
	lonRaw, hasLon := raw["lon"]
	if hasLat && hasLon {
		var lat, lon float64
		if err := json.Unmarshal(latRaw, &lat); err != nil {
			return Record{}, fmt.Errorf("%w: lat: %v", ErrCorrupt, err)
		}
		if err := json.Unmarshal(lonRaw, &lon); err != nil {
			return Record{}, fmt.Errorf("%w: lon: %v", ErrCorrupt, err)
		}
		rec.Lat, rec.Lon = &lat, &lon
	}

	return rec, nil
}
