// Package shaders provides the embedded GLSL sources for the holographic
// overlay material.
package shaders

import _ "embed"

// HoloVertexShader is the vertex stage: MVP transform, glitch displacement,
// stiffness attribute pass-through.
//
//go:embed holo.vert
var HoloVertexShader string

// HoloFragmentShader is the fragment stage: fresnel, scan stripes, heatmap
// ramp and alpha composition.
//
//go:embed holo.frag
var HoloFragmentShader string
