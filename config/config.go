/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package config loads runtime settings from the environment and registry
// definitions from YAML files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	tserrors "github.com/suparena/typereg/errors"
)

// AWS holds the DynamoDB connection settings.
type AWS struct {
	AccessKey string
	SecretKey string
	Region    string
	TableName string
}

// Config is the runtime configuration of the typemap tools.
type Config struct {
	AWS AWS
}

// Load reads .env files (default: ".env") into the environment and returns
// the configuration found there. Missing files are skipped.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	return Config{
		AWS: AWS{
			AccessKey: os.Getenv("AWS_ACCESS_KEY"),
			SecretKey: os.Getenv("AWS_SECRET_KEY"),
			Region:    os.Getenv("AWS_REGION"),
			TableName: os.Getenv("AWS_DDB_TABLE"),
		},
	}, nil
}

// Validate reports the first missing DynamoDB setting.
func (a AWS) Validate() error {
	switch {
	case a.Region == "":
		return tserrors.NewValidationError("AWS_REGION", "must be set")
	case a.TableName == "":
		return tserrors.NewValidationError("AWS_DDB_TABLE", "must be set")
	case (a.AccessKey == "") != (a.SecretKey == ""):
		return tserrors.NewValidationError("AWS_ACCESS_KEY", "access key and secret key must be set together")
	}
	return nil
}
