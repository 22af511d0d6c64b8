// Package seed provides the default food catalog and recommendation table.
package seed

import (
	_ "embed"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/Lixing-Zhang/nutribalance/internal/models"
	"github.com/Lixing-Zhang/nutribalance/internal/repository"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Data is the content of a seed file
type Data struct {
	Foods           []models.FoodItem          `yaml:"foods"`
	Recommendations models.RecommendationTable `yaml:"recommendations"`
}

// Defaults returns a fresh copy of the embedded seed data
func Defaults() Data {
	data, err := Parse(defaultsYAML)
	if err != nil {
		// the embedded file is covered by tests
		panic(err)
	}
	return data
}

// Parse decodes and checks seed YAML
func Parse(raw []byte) (Data, error) {
	var data Data
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Data{}, errors.Wrap(err, "failed to parse seed data")
	}
	if err := repository.ValidateTable(data.Recommendations); err != nil {
		return Data{}, errors.Wrap(err, "invalid seed recommendations")
	}
	return data, nil
}

// Load reads seed data from a YAML file
func Load(path string) (Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return Data{}, errors.Wrapf(err, "failed to open seed file %s", path)
	}
	defer f.Close()

	raw, err := io.ReadAll(f)
	if err != nil {
		return Data{}, errors.Wrapf(err, "failed to read seed file %s", path)
	}
	return Parse(raw)
}

// Encode renders data as YAML
func Encode(w io.Writer, data Data) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return errors.Wrap(err, "failed to encode seed data")
	}
	return enc.Close()
}
