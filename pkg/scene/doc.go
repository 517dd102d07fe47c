// Package scene defines the procedural scene graph built by recipes. A
// scene is an immutable DAG of primitives, transforms, groups and boolean
// combinations; tessellating it yields the mesh that gets voxelized.
package scene
