package interfaces

// ApplicationContext carries a parsed request payload plus request metadata
// from the transport layer into controllers and usecases. Ctx is the
// underlying framework context (gin) kept opaque so usecases stay portable.
type ApplicationContext[T any] struct {
	Ctx        any
	Body       *T
	Keys       map[string]any
	Param      map[string]any
	Query      map[string]any
	Header     map[string][]string
	DeviceID   *string
	DeviceName string
	UserAgent  string
}

func (ac *ApplicationContext[T]) GetHeader(key string) *string {
	if ac.Header == nil {
		return nil
	}
	values, found := ac.Header[key]
	if !found || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func (ac *ApplicationContext[T]) GetStringContextData(key string) string {
	if ac.Keys == nil {
		return ""
	}
	value, found := ac.Keys[key]
	if !found {
		return ""
	}
	str, ok := value.(string)
	if !ok {
		return ""
	}
	return str
}

func (ac *ApplicationContext[T]) GetBoolContextData(key string) bool {
	if ac.Keys == nil {
		return false
	}
	value, found := ac.Keys[key]
	if !found {
		return false
	}
	b, ok := value.(bool)
	if !ok {
		return false
	}
	return b
}

func (ac *ApplicationContext[T]) SetContextData(key string, value any) {
	if ac.Keys == nil {
		ac.Keys = map[string]any{}
	}
	ac.Keys[key] = value
}
