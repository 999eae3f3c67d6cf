package decode

// Required-field accessors fail when the member is missing or mistyped.

func (v Value) String(key string) (string, error)       { return v.Field(key).AsString() }
func (v Value) Int(key string) (int, error)             { return v.Field(key).AsInt() }
func (v Value) Float(key string) (float64, error)       { return v.Field(key).AsFloat() }
func (v Value) Bool(key string) (bool, error)           { return v.Field(key).AsBool() }
func (v Value) IntString(key string) (int, error)       { return v.Field(key).AsIntString() }
func (v Value) FloatString(key string) (float64, error) { return v.Field(key).AsFloatString() }
func (v Value) BoolString(key string) (bool, error)     { return v.Field(key).AsBoolString() }
func (v Value) Array(key string) ([]Value, error)       { return v.Field(key).AsArray() }
func (v Value) Object(key string) (Value, error)        { return v.Field(key).AsObject() }

// Optional-field accessors return nil when the member is missing, null or unparsable.

func (v Value) OptString(key string) *string       { return opt(v.String(key)) }
func (v Value) OptInt(key string) *int             { return opt(v.Int(key)) }
func (v Value) OptFloat(key string) *float64       { return opt(v.Float(key)) }
func (v Value) OptBool(key string) *bool           { return opt(v.Bool(key)) }
func (v Value) OptIntString(key string) *int       { return opt(v.IntString(key)) }
func (v Value) OptFloatString(key string) *float64 { return opt(v.FloatString(key)) }
func (v Value) OptBoolString(key string) *bool     { return opt(v.BoolString(key)) }

func opt[T any](val T, err error) *T {
	if err != nil {
		return nil
	}
	return &val
}

// Required decodes member key with fn. A missing member is an error.
func Required[T any](v Value, key string, fn func(Value) (T, error)) (T, error) {
	f := v.Field(key)
	if !f.Exists() {
		var zero T
		return zero, f.missing()
	}
	return fn(f)
}

// Optional decodes member key with fn and returns nil when the member is
// missing, null, or fn fails. The failure does not propagate to the caller.
func Optional[T any](v Value, key string, fn func(Value) (T, error)) *T {
	f := v.Field(key)
	if !f.Exists() || f.IsNull() {
		return nil
	}
	out, err := fn(f)
	if err != nil {
		return nil
	}
	return &out
}

// List decodes member key as an array whose every element must decode with fn.
func List[T any](v Value, key string, fn func(Value) (T, error)) ([]T, error) {
	items, err := v.Array(key)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		decoded, err := fn(item)
		if err != nil {
			return nil, err
		}
		out = append(out, decoded)
	}
	return out, nil
}

// OptList decodes member key as an array, skipping elements fn rejects.
// It returns nil when the member is missing or not an array.
func OptList[T any](v Value, key string, fn func(Value) (T, error)) []T {
	items, err := v.Array(key)
	if err != nil {
		return nil
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		decoded, err := fn(item)
		if err != nil {
			continue
		}
		out = append(out, decoded)
	}
	return out
}
