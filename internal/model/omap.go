package model

// KV is one key/value entry of an order-preserving map.
type KV struct {
	Key   string
	Value interface{}
}

// OMap is an insertion-ordered map. Clash proxy records must serialize with
// a stable, author-chosen key order (clients diff configs textually), so a
// plain Go map cannot carry them.
type OMap []KV

// Set appends the pair, replacing an existing key in place.
func (m *OMap) Set(key string, value interface{}) {
	for i := range *m {
		if (*m)[i].Key == key {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, KV{Key: key, Value: value})
}

// Get returns the value for key, nil when absent.
func (m OMap) Get(key string) interface{} {
	for _, kv := range m {
		if kv.Key == key {
			return kv.Value
		}
	}
	return nil
}
