// Package main is the snapcourse command. It serves course pages split into
// topic or weekly sections with the Fiber framework, keeps courses, users and
// settings in a gorm database and stores uploaded files locally or in an S3
// compatible bucket.
//
//	snapcourse start --config ./etc/ [--dev]
//	snapcourse config dump [--json]
package main
