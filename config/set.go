package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/clipforge-cli/clipforge/constant"
	"github.com/clipforge-cli/clipforge/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// ErrUnknownKey is returned for keys that were never registered.
var ErrUnknownKey = errors.New("unknown key")

// File returns the path of the config file.
func File() string {
	return filepath.Join(where.Config(), constant.Clipforge+".toml")
}

// Closest returns the registered key with the smallest edit distance to k.
func Closest(k string) string {
	return lo.MinBy(lo.Keys(Default), func(a, b string) bool {
		return levenshtein.Distance(k, a) < levenshtein.Distance(k, b)
	})
}

// Parse converts raw command line values into the type of the key's default.
// Only list keys consume more than the first value.
func Parse(k string, raw []string) (any, error) {
	field, ok := Default[k]
	if !ok {
		return nil, fmt.Errorf("%s: %w", k, ErrUnknownKey)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("%s: value is required", k)
	}

	first := raw[0]
	switch field.Value.(type) {
	case string:
		return first, nil
	case int:
		n, err := strconv.Atoi(first)
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer, got %q", k, first)
		}
		return n, nil
	case float64:
		f, err := strconv.ParseFloat(first, 64)
		if err != nil {
			return nil, fmt.Errorf("%s expects a number, got %q", k, first)
		}
		return f, nil
	case bool:
		b, err := strconv.ParseBool(first)
		if err != nil {
			return nil, fmt.Errorf("%s expects a boolean, got %q", k, first)
		}
		return b, nil
	case []string:
		return raw, nil
	default:
		return nil, fmt.Errorf("%s has unsupported type %T", k, field.Value)
	}
}

// Save persists the current settings, creating the config file when it is missing.
func Save() error {
	var notFound viper.ConfigFileNotFoundError
	if err := viper.WriteConfig(); !errors.As(err, &notFound) {
		return err
	}
	return viper.SafeWriteConfig()
}

// Reset restores k to its default. An empty k resets every key.
func Reset(k string) error {
	if k == "" {
		for name, field := range Default {
			viper.Set(name, field.Value)
		}
		return nil
	}

	field, ok := Default[k]
	if !ok {
		return fmt.Errorf("%s: %w", k, ErrUnknownKey)
	}
	viper.Set(k, field.Value)
	return nil
}
