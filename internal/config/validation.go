package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validate checks field constraints and the cross-field rules of the
// resources section.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterStructValidation(validateLexica, LexicaConfig{})
	v.RegisterStructValidation(validateTask, TaskConfig{})

	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func validateLexica(sl validator.StructLevel) {
	lx, ok := sl.Current().Interface().(LexicaConfig)
	if !ok || !lx.Enabled {
		return
	}
	if lx.Clusters == "" && lx.Embeddings == "" {
		sl.ReportError(lx.Clusters, "Clusters", "clusters", "required_without_embeddings", "")
	}
}

func validateTask(sl validator.StructLevel) {
	task, ok := sl.Current().Interface().(TaskConfig)
	if !ok || !task.Enabled {
		return
	}
	if task.Every < time.Second {
		sl.ReportError(task.Every, "Every", "every", "min", "1s")
	}
}
