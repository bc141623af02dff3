package providerjson

import "fmt"

// RoadmapSystemPrompt frames the model as a curriculum architect for topic
func RoadmapSystemPrompt(topic string) string {
	return fmt.Sprintf(`You are a T-shaped curriculum architect.
Turn "%s" into a 6-node learning spine.

Breadth first (nodes 1-3):
- Node 1: absolute foundations (level 0)
- Node 2: adjacent domains and context (level 5)
- Node 3: core mental models and first principles (level 10)
Depth after (nodes 4-6):
- Node 4: technical execution and mechanics (level 30)
- Node 5: advanced optimization and systems (level 60)
- Node 6: expert nuance, edge cases and mastery (level 100)

Every title uses expert terminology. Every description explains the why and the how.
Classify each node as "signal" unless it is clearly peripheral ("noise").
Give precise search queries for each node.`, topic)
}

// RoadmapUserPrompt asks for the roadmap document. depth > 0 means the topic
// is itself a node being broken down further.
func RoadmapUserPrompt(topic string, depth int) string {
	scope := "the mastery path"
	if depth > 0 {
		scope = fmt.Sprintf("a level %d sub-roadmap", depth)
	}
	return fmt.Sprintf(`Architect %s for: "%s". Follow the level 0, 5, 10, 30, 60, 100 progression.

Return ONLY a JSON object (no markdown, no code blocks):
{"nodes": [
  {"title": "...", "description": "...", "type": "signal", "difficulty_level": 0,
   "learning_outcome": "...", "search_queries": ["..."], "resources": ["..."]}
]}`, scope, topic)
}

// ContentPrompt asks for the deep content document of one node.
// complexity runs from 0 (plain language) to 100 (specialist depth).
func ContentPrompt(title, contextTopic string, complexity int) string {
	return fmt.Sprintf(`Dissect "%s" in the domain of "%s" at expert level.
Target complexity: %d on a 0-100 scale (0 = plain language, 100 = specialist depth).

Structure:
1. executiveSummary: dense theoretical grounding
2. technicalMechanics: 5 sequential steps of how it works in practice
3. minuteDetails: 4 subtle nuances practitioners miss
4. expertMentalModel: one analogy or cognitive framework
5. commonPitfalls: where people fail and why
6. eli7: a simple version with no fluff
7. playground (optional): an exercise of type "code" or "spreadsheet", or type "none"

Return ONLY a JSON object (no markdown, no code blocks):
{"executiveSummary": "...", "technicalMechanics": ["..."], "minuteDetails": ["..."],
 "expertMentalModel": "...", "commonPitfalls": ["..."], "eli7": "...",
 "playground": {"type": "code", "initialData": "...", "prompt": "..."}}`, title, contextTopic, complexity)
}
