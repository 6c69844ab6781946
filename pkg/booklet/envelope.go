package booklet

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Scheme codes. Fixed once a module is entered; every store key, payload key
// and submission path below is derived from the code.
const (
	SchemeSHG   = "SHG"
	SchemeSAKHI = "SAKHI"
	SchemeLOD   = "LOD"
)

var ErrUnknownScheme = errors.New("unknown scheme")

// wire describes the persistence/submission envelope of one scheme: the
// draft-store key, the JSON key carrying the scalar fields, the payload key
// for each record list, and the rendering-service path. Lists either ride as
// siblings of the data key (SHG, LOD) or nest inside it (SAKHI).
type wire struct {
	storeKey   string
	dataKey    string
	listKeys   map[string]string // list name -> payload key
	listOrder  []string
	nestLists  bool
	submitPath string
}

var wires = map[string]wire{
	SchemeSHG: {
		storeKey:   "shg_booklet_data",
		dataKey:    "shg_data",
		listKeys:   map[string]string{"members": "members_data"},
		listOrder:  []string{"members"},
		submitPath: "/loan/shg-booklet",
	},
	SchemeSAKHI: {
		storeKey:   "sakhi_booklet_data",
		dataKey:    "sakhi_data",
		listKeys:   map[string]string{"legalHeirs": "legalHeirs"},
		listOrder:  []string{"legalHeirs"},
		nestLists:  true,
		submitPath: "/loan/sakhi-booklet",
	},
	SchemeLOD: {
		storeKey:   "lod_booklet_data",
		dataKey:    "loan_data",
		listKeys:   map[string]string{"borrowers": "borrowers_data", "deposits": "deposits_data"},
		listOrder:  []string{"borrowers", "deposits"},
		submitPath: "/loan/lod-booklet",
	},
}

func IsKnownScheme(code string) bool {
	_, ok := wires[code]
	return ok
}

// StoreKey is the draft-store key for a scheme, scoped per user.
func StoreKey(userID, scheme string) (string, error) {
	w, ok := wires[scheme]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownScheme, scheme)
	}
	return userID + ":" + w.storeKey, nil
}

// SubmitPath is the rendering-service path for a scheme.
func SubmitPath(scheme string) (string, error) {
	w, ok := wires[scheme]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownScheme, scheme)
	}
	return w.submitPath, nil
}

// Envelope is the serialized form of a draft: the user profile embedded
// verbatim plus the scheme-keyed draft payload. The same shape is written to
// the draft store and POSTed to the rendering service.
type Envelope struct {
	Scheme   string
	UserData json.RawMessage
	Draft    *Draft
}

func (e *Envelope) MarshalJSON() ([]byte, error) {
	w, ok := wires[e.Scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScheme, e.Scheme)
	}

	out := make(map[string]json.RawMessage, 2+len(w.listKeys))
	user := e.UserData
	if len(user) == 0 {
		user = json.RawMessage("null")
	}
	out["user_data"] = user

	if w.nestLists {
		// Scalars and lists share one object under the data key.
		data := make(map[string]json.RawMessage, len(e.Draft.Scalars)+len(w.listOrder))
		for k, v := range e.Draft.Scalars {
			raw, err := json.Marshal(v)
			if err != nil {
				return nil, err
			}
			data[k] = raw
		}
		for _, name := range w.listOrder {
			raw, err := json.Marshal(listOrEmpty(e.Draft.Lists[name]))
			if err != nil {
				return nil, err
			}
			data[w.listKeys[name]] = raw
		}
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		out[w.dataKey] = raw
	} else {
		scalars, err := json.Marshal(e.Draft.Scalars)
		if err != nil {
			return nil, err
		}
		out[w.dataKey] = scalars
		for _, name := range w.listOrder {
			raw, err := json.Marshal(listOrEmpty(e.Draft.Lists[name]))
			if err != nil {
				return nil, err
			}
			out[w.listKeys[name]] = raw
		}
	}

	return json.Marshal(out)
}

// ParseEnvelope restores a stored envelope for the given scheme. Missing keys
// yield an empty draft section; a payload that is not a JSON object fails.
func ParseEnvelope(scheme string, data []byte) (*Envelope, error) {
	w, ok := wires[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownScheme, scheme)
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	env := &Envelope{Scheme: scheme, Draft: NewDraft(scheme)}
	if user, ok := raw["user_data"]; ok {
		env.UserData = user
	}

	if w.nestLists {
		payload, ok := raw[w.dataKey]
		if ok {
			var data map[string]json.RawMessage
			if err := json.Unmarshal(payload, &data); err != nil {
				return nil, err
			}
			listKeys := make(map[string]string, len(w.listKeys)) // payload key -> list name
			for name, key := range w.listKeys {
				listKeys[key] = name
			}
			for k, v := range data {
				if name, isList := listKeys[k]; isList {
					var list []Record
					if err := json.Unmarshal(v, &list); err != nil {
						return nil, err
					}
					env.Draft.Lists[name] = list
					continue
				}
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					// The original client stored numbers unquoted at times;
					// keep their textual form rather than rejecting the draft.
					s = string(v)
				}
				env.Draft.Scalars[k] = s
			}
		}
	} else {
		if scalars, ok := raw[w.dataKey]; ok {
			if err := json.Unmarshal(scalars, &env.Draft.Scalars); err != nil {
				return nil, err
			}
		}
		for name, key := range w.listKeys {
			payload, ok := raw[key]
			if !ok {
				continue
			}
			var list []Record
			if err := json.Unmarshal(payload, &list); err != nil {
				return nil, err
			}
			env.Draft.Lists[name] = list
		}
	}

	return env, nil
}

func listOrEmpty(list []Record) []Record {
	if list == nil {
		return []Record{}
	}
	return list
}
