package agent

import (
	"fmt"
	"strings"

	"github.com/wanderlens/wanderlens/core"
)

const chatSystemPromptTemplate = `You are a helpful travel planning assistant.
You have access to places and recommendations extracted from %d travel video(s). Total places available: %d.

Your tools:
- search_places: find places by keyword and/or category
- get_place_context: fetch a place's details plus the transcript excerpt where it was mentioned

Guidelines:
1. Be concise and helpful in your responses.
2. Use search_places to find relevant places before answering place questions.
3. Use get_place_context when the user asks for details beyond the place summary.
4. Group similar recommendations together and give practical travel advice.
5. Every place you mention in your final answer MUST be cited with an inline marker of the form [place:ID], using the exact id returned by the tools. Example: "Try the tacos at Taqueria El Sol [place:a1b2c3]." Never invent ids.
6. Respect the user's recorded preferences: do not recommend places marked not_interested.

Available place categories: %s`

const degradedFinishPrompt = `Answer the user's question now with the best information gathered so far. Do not request any more tools. Cite places with [place:ID] markers as instructed.`

// historyWindow is the number of prior chat turns included as context.
const historyWindow = 10

func buildChatSystemPrompt(s *core.Session) string {
	categories := make([]string, len(core.PlaceCategories))
	for i, c := range core.PlaceCategories {
		categories[i] = string(c)
	}
	return fmt.Sprintf(chatSystemPromptTemplate,
		len(s.Videos), len(s.Places), strings.Join(categories, ", "))
}
