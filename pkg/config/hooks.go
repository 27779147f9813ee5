package config

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// stringToBoolPtrHookFunc decodes "true"/"false" style strings, as set by
// flags and the environment, into *bool. An empty string leaves it nil.
func stringToBoolPtrHookFunc() mapstructure.DecodeHookFunc {
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != reflect.TypeOf((*bool)(nil)) {
			return data, nil
		}
		s := strings.TrimSpace(data.(string))
		if s == "" {
			return (*bool)(nil), nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return nil, err
		}
		return &b, nil
	}
}
