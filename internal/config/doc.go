// Package config defines the format-agnostic manifest model: task and
// module definitions as plain data, decoupled from the HCL and YAML
// sources they were loaded from.
//
// A Loader turns files of one format into a Model; Apply walks a Model
// and feeds it through descriptor construction and module binding.
// Everything downstream of the adapters speaks only in these types.
package config
