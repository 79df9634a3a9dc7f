package schema

import (
	"encoding/json"
	"fmt"
	"time"
)

// DateTime is an ISO-8601 timestamp.
type DateTime struct {
	time.Time
}

func (DateTime) ImplementsGraphQLType(name string) bool {
	return name == "DateTime"
}

func (t *DateTime) UnmarshalGraphQL(input interface{}) error {
	switch v := input.(type) {
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return err
		}
		t.Time = parsed
		return nil
	case time.Time:
		t.Time = v
		return nil
	default:
		return fmt.Errorf("wrong type for DateTime: %T", v)
	}
}

func (t DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// GenericScalar carries an arbitrary JSON object.
type GenericScalar map[string]interface{}

func (GenericScalar) ImplementsGraphQLType(name string) bool {
	return name == "GenericScalar"
}

func (g *GenericScalar) UnmarshalGraphQL(input interface{}) error {
	m, ok := input.(map[string]interface{})
	if !ok {
		return fmt.Errorf("wrong type for GenericScalar: %T", input)
	}
	*g = GenericScalar(m)
	return nil
}
