package extraction

import (
	"fmt"
	"strings"

	"github.com/wanderlens/wanderlens/core"
)

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "suggested_title": {
      "type": "string"
    },
    "places": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "name": {
            "type": "string",
            "minLength": 1
          },
          "category": {
            "type": "string"
          },
          "description": {
            "type": "string"
          },
          "timestamp_seconds": {
            "type": ["integer", "null"],
            "minimum": 0
          },
          "mentioned_context": {
            "type": "string"
          },
          "address": {
            "type": ["string", "null"]
          },
          "neighborhood": {
            "type": ["string", "null"]
          }
        },
        "required": ["name", "category", "description", "mentioned_context"],
        "additionalProperties": false
      }
    }
  },
  "required": ["places", "suggested_title"],
  "additionalProperties": false
}`

const extractionPromptTemplate = `You are an expert at analyzing travel video transcripts and extracting place recommendations.

Your task is to:
1. Create a short, catchy 3-5 word title for this video based on its content (e.g., "Tokyo Street Food Guide" or "Hidden Cafes in Paris")
2. Identify all places mentioned in the transcript that have recommendations or opinions from the creator

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble,
explanation, greeting, or acknowledgment. Start your response directly with the opening brace {
and end with the closing brace }. Your output must exactly follow this schema:

%s

Rules:
- The category field must match exactly one of the listed values: %s.
  For cafes, coffee shops or bakeries use "coffee_shop", not "cafe".
- The mentioned_context field is what the creator actually said about the place (their opinion,
  why they recommend it), quoted or closely paraphrased from the transcript.
- The timestamp_seconds field is the approximate offset where the place is discussed. Include it
  only when it is determinable from the transcript; use null when unsure. Never invent a number.
- The address and neighborhood fields are included only when the transcript mentions them; use
  null otherwise.
- Only include places that the creator actually recommends or has an opinion about. Skip places
  mentioned in passing without any recommendation.
- If no recommended places appear in the transcript, return "places": [].
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text
  outside the object.`

const summaryPromptTemplate = `You are an expert at summarizing travel video content.

Create a concise 2-3 sentence summary of the video that highlights:
1. The location/destination featured
2. The main types of recommendations (restaurants, hotels, activities, etc.)
3. The overall vibe or theme of the recommendations

Be engaging and informative. Respond with the summary text only.`

const repairPromptTemplate = `Your previous response was not valid against the required schema:

%s

Return the corrected JSON object only, complying exactly with the schema. No other text.`

// summaryPlacesLimit caps how many places are listed in the summary
// prompt context.
const summaryPlacesLimit = 10

func buildExtractionSystemPrompt() string {
	names := make([]string, len(core.PlaceCategories))
	for i, c := range core.PlaceCategories {
		names[i] = string(c)
	}
	return fmt.Sprintf(extractionPromptTemplate, extractionResponseSchema, strings.Join(names, ", "))
}

func buildVideoPrompt(video *core.Video, transcript string) string {
	description := video.Description
	if description == "" {
		description = "N/A"
	}
	return fmt.Sprintf(
		"Video Title: %s\nDescription: %s\n\nTranscript:\n%s\n\nExtract all recommended places from this travel video transcript.",
		video.Title, description, transcript)
}

func buildSummaryPrompt(video *core.Video, places []*core.Place) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Video Title: %s\n\nExtracted Places:\n", video.Title)
	for i, p := range places {
		if i >= summaryPlacesLimit {
			break
		}
		fmt.Fprintf(&b, "- %s (%s): %s\n", p.Name, p.Category, p.MentionedContext)
	}
	if len(places) == 0 {
		b.WriteString("(none)\n")
	}
	b.WriteString("\nCreate a concise summary of this travel video.")
	return b.String()
}
