// Package content holds the static, pre-authored lesson catalog. Lessons are
// compiled into the binary; there is no authoring surface at runtime.
package content

import "github.com/art-lint/artlint-api/internal/models"

// Lessons returns the full catalog in display order.
func Lessons() []models.Lesson {
	return catalog
}

var catalog = []models.Lesson{
	{
		ID:          "lesson-1-sphere",
		Title:       "1. The Sphere",
		Description: "The foundation of 3D drawing. Learn light sources, core shadows, and cast shadows.",
		Difficulty:  models.DifficultyBeginner,
		Topics:      []string{"Form", "Light", "Shading"},
		Content:     sphereContent,
	},
	{
		ID:          "lesson-2-overlapping",
		Title:       "2. Overlapping Spheres",
		Description: "Create instant depth by placing objects behind one another.",
		Difficulty:  models.DifficultyBeginner,
		Topics:      []string{"Depth", "Placement", "Size"},
		Content:     overlappingContent,
	},
	{
		ID:          "lesson-3-adv-spheres",
		Title:       "3. Advanced Spheres",
		Description: "Master texture, density, and complex arrangements of spheres.",
		Difficulty:  models.DifficultyIntermediate,
		Topics:      []string{"Texture", "Density", "Composition"},
		Content:     advancedSpheresContent,
	},
	{
		ID:          "lesson-4-cube",
		Title:       "4. The Cube",
		Description: "Unlock 3D construction with the \"Y-Method\" for perfect cubes.",
		Difficulty:  models.DifficultyBeginner,
		Topics:      []string{"Perspective", "Structure", "Geometry"},
		Content:     cubeContent,
	},
	{
		ID:          "lesson-5-cylinder",
		Title:       "5. The Cylinder",
		Description: "Combine curves and lines to create cans, towers, and cups.",
		Difficulty:  models.DifficultyBeginner,
		Topics:      []string{"Form", "Curves", "Structure"},
		Content:     cylinderContent,
	},
}

const sphereContent = `# Lesson 1: The Sphere

**Objective:** Turn a flat circle into a three-dimensional sphere using a light source and shading.

## Step 1: The Circle
Draw a simple circle in the middle of your page. It does not need to be perfect; a lumpy circle makes for a more organic shape.

## Step 2: The Light Source
Decide where your "sun" is. Place the light source in the top right corner and mark it with a small arrow. This is the most important step in 3D drawing.

## Step 3: The Cast Shadow
If the light comes from the top right, the shadow lands on the ground at the bottom left. Draw a horizontal oval tucked under the circle so the object does not look like it is floating.

## Step 4: The Core Shadow
Shade the curve of the circle opposite the light, getting darker as you move away from the light source. Leave the spot facing the sun pure white for the highlight.

## Step 5: Blending
Smudge the shading from the dark area toward the light area and soften the cast shadow. You have turned a 2D circle into a 3D sphere.`

const overlappingContent = `# Lesson 2: Overlapping Spheres

The biggest visual clue for depth is **overlap**. If object A blocks object B, A must be closer.

## The Rules of Depth
1. **Overlap**: objects in front partially hide objects behind.
2. **Placement**: objects closer to you sit lower on the paper.
3. **Size**: objects closer to you appear larger.

## Your Mission
Draw a "cloud" of spheres. Start with one in the center, tuck the next one behind it, and keep going until you have 10-15 spheres floating together.`

const advancedSpheresContent = `# Lesson 3: Advanced Spheres

Push spheres further with texture and density.

## Texture
A sphere reads as glass, stone or fur purely through the marks on its surface. Keep the shading logic from Lesson 1 and vary only the stroke quality.

## Density
Cluster spheres with intent: tight groups read as heavy, scattered groups read as light. Keep a single light source consistent across the whole arrangement.

## Your Mission
Draw three spheres of the same size but different materials: one polished metal, one rough stone, one fuzzy tennis ball.`

const cubeContent = `# Lesson 4: The Cube

The cube unlocks everything man-made: buildings, furniture, vehicles.

## The "Y" Method
1. Draw a vertical line (the near corner).
2. Draw a 'V' shape from the top.
3. Draw an inverted 'V' from the bottom.
4. Connect the lines to form the sides.

## Your Mission
Draw 5 floating cubes, each rotated slightly. Shade the bottom of each cube darker than the sides to show they are floating.`

const cylinderContent = `# Lesson 5: The Cylinder

A cylinder is two ellipses connected by straight lines. Cans, towers, cups and limbs all start here.

## Ellipses, Not Circles
The top and bottom of a cylinder are ellipses. The further below eye level, the rounder the ellipse; the closer to eye level, the flatter.

## Your Mission
Draw a stack of three coins, then stretch the same construction into a drinking glass. Keep both ellipses aligned on a vertical center line.`
