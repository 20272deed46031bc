// Package dsl builds schema trees for sensorcheck.
//
// Entry points
//   - Object(): create an object builder; chain Field/Required/Require/Unknown* then Build()/MustBuild().
//   - String()/Number()/Bool(): primitive nodes to pass into Field.
//
// Objects ignore undeclared keys by default. UnknownStrict() makes them an
// unknown_key issue, and the JSON Schema export then carries
// additionalProperties=false.
//
// Example
//
//	gps := g.Object().
//	    Field("lat", g.Number()).Required().
//	    Field("lon", g.Number()).Required().
//	    MustBuild()
//	location := g.Object().
//	    Field("room", g.String()).
//	    Field("gps", gps).Required().
//	    MustBuild()
//	err := sensorcheck.Validate(ctx, location, value, sensorcheck.ValidateOpt{})
package dsl
