package contract

import (
	"errors"
	"fmt"
	"os"

	"github.com/NishizukaKoichi/score-function/schema"
	"github.com/go-viper/mapstructure/v2"
	"gopkg.in/yaml.v3"
)

// ErrMissingMetrics is returned when a request carries no metrics payload.
var ErrMissingMetrics = errors.New("metrics payload is required")

// LoadScoreConfigFile reads a YAML or JSON score config override.
// An empty path yields a nil override.
func LoadScoreConfigFile(path string) (map[string]any, error) {
	if path == "" {
		return nil, nil
	}
	doc, err := readDocument(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load score config: %w", err)
	}
	return doc, nil
}

// LoadMetricsFile reads a YAML or JSON metrics document and decodes it.
func LoadMetricsFile(path string) (schema.MetricsInput, error) {
	if path == "" {
		return schema.MetricsInput{}, ErrMissingMetrics
	}
	doc, err := readDocument(path)
	if err != nil {
		return schema.MetricsInput{}, fmt.Errorf("cannot load metrics: %w", err)
	}
	if doc == nil {
		return schema.MetricsInput{}, fmt.Errorf("%s: %w", path, ErrMissingMetrics)
	}
	return DecodeMetrics(doc)
}

// readDocument parses a file into a generic object. YAML is a superset of JSON,
// so both formats go through the same decoder.
func readDocument(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// ValidateMetrics checks that every face group and required sub-metric is present.
// Faces and sub-metrics are checked in FaceOrder, so the first gap is reported.
func ValidateMetrics(raw map[string]any) error {
	if raw == nil {
		return ErrMissingMetrics
	}
	for _, face := range schema.FaceOrder {
		value, ok := raw[string(face)]
		if !ok || value == nil {
			return fmt.Errorf("missing face %q in metrics", face)
		}
		group, ok := value.(map[string]any)
		if !ok {
			return fmt.Errorf("face %q in metrics must be an object, got %T", face, value)
		}
		for _, key := range schema.RequiredMetrics[face] {
			if v, ok := group[key]; !ok || v == nil {
				return fmt.Errorf("missing metric %q", string(face)+"."+key)
			}
		}
	}
	return nil
}

// DecodeMetrics validates a generic metrics object and decodes it into MetricsInput.
// Unknown keys are ignored. Non-numeric sub-metrics are rejected.
func DecodeMetrics(raw map[string]any) (schema.MetricsInput, error) {
	if err := ValidateMetrics(raw); err != nil {
		return schema.MetricsInput{}, err
	}

	var m schema.MetricsInput
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName: "json",
		Result:  &m,
	})
	if err != nil {
		return schema.MetricsInput{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return schema.MetricsInput{}, fmt.Errorf("invalid metrics: %w", err)
	}
	return m, nil
}

// CheckWeightSums reports the faces whose linear coefficients do not sum to 1.
func CheckWeightSums(w schema.WeightConfig) error {
	sums := w.Sums()
	var errs []error
	for _, face := range schema.FaceOrder {
		sum := sums.Get(face)
		if sum < 1-schema.WeightSumTolerance || sum > 1+schema.WeightSumTolerance {
			errs = append(errs, fmt.Errorf("weights for face %s sum to %.3f, expected 1.0", face, sum))
		}
	}
	return errors.Join(errs...)
}
