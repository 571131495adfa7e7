package config

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Profile holds host-tunable shell settings loaded from a YAML file.
// Unset fields keep the shell's defaults.
type Profile struct {
	Prompt           string `json:"prompt"`
	Banner           string `json:"banner"`
	CommentDelimiter string `json:"comment_delimiter" validate:"omitempty,len=1"`
	HistoryFile      string `json:"history_file"`
}

// Validate the profile for basic semantic errors.
func (p *Profile) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(p)
}

// LoadProfile reads and validates the profile stored at path. Unknown
// fields are rejected so typos surface instead of silently doing nothing.
func LoadProfile(fs afero.Fs, path string) (*Profile, error) {
	contents, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	var out Profile
	if err := yaml.UnmarshalStrict(contents, &out); err != nil {
		return nil, err
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return &out, nil
}
