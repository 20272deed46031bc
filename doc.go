package sensorcheck

// Package sensorcheck validates JSON documents against a static schema tree:
//
// - ParseBytes turns JSON text into a document.Value through a pluggable JSONDriver
// - Validate walks a schema Node over that value and reports Issues
// - A stable error model via Issues (JSON Pointer, code, message) and DecodeError for input that is not JSON
// - Optional duplicate-key/depth/size enforcement during parsing (ParseOpt)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Build schemas with dsl/, export them with jsonschema/, and keep the sensor report schema in sensor/.
// - The file-level workflow and its outcome categories live in validator/, the CLI in cmd/sensorcheck.
//
// Typical usage:
//
//  node := dsl.Object().Field("ip", dsl.String()).Required().MustBuild()
//  v, err := sensorcheck.ParseBytes(data, sensorcheck.ParseOpt{})
//  err = sensorcheck.Validate(ctx, node, v, sensorcheck.ValidateOpt{})
//  if iss, ok := sensorcheck.AsIssues(err); ok {
//      fmt.Println(iss[0].Message)
//  }
//
