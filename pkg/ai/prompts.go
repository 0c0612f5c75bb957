package ai

import "strings"

func critiqueSystemPrompt() string {
	return "You are a world-class art teacher. Output strictly valid JSON. Do not use Markdown code blocks. " +
		"Keep responses concise and focused on art improvement."
}

func critiquePrompt(lessonContext string) string {
	b := strings.Builder{}
	b.WriteString("Analyze this student's drawing strictly.\n")
	if lessonContext != "" {
		b.WriteString("CONTEXT: The student is submitting homework for the lesson: \"")
		b.WriteString(lessonContext)
		b.WriteString("\". Evaluate them specifically on how well they applied the concepts of this lesson.\n")
	}
	b.WriteString(`
Focus on:
1. Perspective (vanishing points, horizon line, depth)
2. Anatomy and Proportions (if applicable)
3. Line Quality (confidence, weight)
4. Light and Shadow (values, light source consistency, physically consistent shadow placement)

Provide a JSON response with the fields critique, score, points, exercises.
Ensure "critique" is a concise paragraph (under 100 words).
Ensure "score" is an integer between 0 and 100 grading the overall execution.
Ensure "points" has 3-5 specific feedback items, each with title, description and severity (low, medium or high).
Ensure "exercises" lists 3 actionable practice tasks.
DO NOT return the image data in the response.`)
	return b.String()
}

func overlayPrompt(lessonContext string) string {
	b := strings.Builder{}
	b.WriteString("You are a strict art teacher grading a student's homework.\n")
	b.WriteString("Output the EXACT SAME IMAGE but draw BRIGHT RED CORRECTION LINES over it to highlight mistakes.\n")
	if lessonContext != "" {
		b.WriteString("The student is practicing: \"" + lessonContext + "\". Mark mistakes relevant to this lesson.\n")
	}
	b.WriteString(`1. Draw perspective lines (vanishing points) in RED if the perspective is off.
2. Circle anatomical errors in RED.
3. Draw arrows indicating where light should be coming from if shading is wrong.
DO NOT change the style, composition, or content of the drawing. Just add the red teacher's markings on top.`)
	return b.String()
}

func structurePrompt(lessonContext string) string {
	b := strings.Builder{}
	b.WriteString("Create an educational \"How to Draw\" diagram overlay for this image.\n")
	if lessonContext != "" {
		b.WriteString("Emphasize the specific structures taught in: \"" + lessonContext + "\".\n")
	}
	b.WriteString(`
Instructions:
1. Analyze the subjects in the image.
2. Draw a geometric wireframe (construction lines) OVER the original image to show how it is built.
3. Use simple 3D shapes: spheres for heads/joints, cylinders for limbs, cubes for boxes.
4. Use BRIGHT BLUE or RED lines for the wireframe so it stands out against the original drawing.
5. The goal is to teach the student the underlying 3D structure of their drawing.

Output the image with the wireframe overlay.`)
	return b.String()
}

func fixedPrompt(lessonContext string) string {
	b := strings.Builder{}
	b.WriteString("Act as a master artist.\nRedraw the provided image to fix technical errors.\n")
	if lessonContext != "" {
		b.WriteString("Ensure the fixed version perfectly demonstrates the technique from: \"" + lessonContext + "\".\n")
	}
	b.WriteString(`
Instructions:
1. Fix perspective issues.
2. Fix anatomical proportion errors.
3. Keep the EXACT same style, character, and composition. Do not change the subject.
4. This should look like the "polished" version of the student's sketch.

Output the fixed image.`)
	return b.String()
}
