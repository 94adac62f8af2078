package openai

import "fmt"

const boundaryResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "verdict": {
      "type": "string",
      "enum": ["merge", "keep"]
    },
    "confidence": {
      "type": "number",
      "minimum": 0,
      "maximum": 1
    }
  },
  "required": ["verdict", "confidence"],
  "additionalProperties": false
}`

const boundaryPromptTemplate = `You review the boundary between two adjacent text chunks produced by a document splitter.

The input shows the END of the first chunk, then the marker line ---BOUNDARY---, then the START of the second chunk.

Answer "merge" when the two sides clearly continue the same thought, sentence, list, or topic and splitting them would hurt retrieval. Answer "keep" when the boundary falls at a natural break such as a topic change, a new section, or a completed thought.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- "verdict" must be exactly "merge" or "keep", lowercase.
- "confidence" is a number from 0 (guessing) to 1 (certain).
- When in doubt, answer "keep" with low confidence. A wrong merge cannot be undone; a wrong keep can.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example (sentence cut in half):
Input: "The committee voted to approve the new
---BOUNDARY---
budget for the next fiscal year."
Output:
{"verdict":"merge","confidence":0.95}

Example (topic change):
Input: "That concluded the discussion of revenue.
---BOUNDARY---
Chapter 4. Personnel. The hiring freeze remains in effect."
Output:
{"verdict":"keep","confidence":0.9}

Example (continuing list):
Input: "The kit contains: a compass, a map,
---BOUNDARY---
a flashlight, and a first aid kit."
Output:
{"verdict":"merge","confidence":0.85}

Example (unclear):
Input: "The results were mixed.
---BOUNDARY---
Several factors contributed to this outcome."
Output:
{"verdict":"keep","confidence":0.4}`

// buildBoundaryPrompt creates the system prompt with the response schema embedded.
func buildBoundaryPrompt() string {
	return fmt.Sprintf(boundaryPromptTemplate, boundaryResponseSchema)
}
