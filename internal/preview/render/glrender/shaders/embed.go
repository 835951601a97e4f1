// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// BoothVertexShader transforms booth and environment meshes.
//
//go:embed booth.vert
var BoothVertexShader string

// BoothFragmentShader applies material color with ambient, diffuse and
// roughness-scaled specular lighting.
//
//go:embed booth.frag
var BoothFragmentShader string
