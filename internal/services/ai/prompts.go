package ai

import "fmt"

// System and user prompts for each extraction kind. The orchestrator always
// prepends exactly one system turn before any user-supplied content.

const checklistSystemPrompt = "You are a specialized JSON parser for task checklists. " +
	"Your sole purpose is to convert unstructured text into valid JSON. " +
	"ALWAYS respond with ONLY valid JSON that starts with { and ends with }. " +
	"Never include explanations, markdown formatting, or additional text."

const restructureSystemPrompt = "You are a helpful AI assistant that organizes and " +
	"restructures lists. Respond only with valid JSON in the requested format."

const planSystemPrompt = `You are a task-generation engine that outputs valid JSON with tasks and categories.

Your response must be ONLY valid JSON in this exact format:
{
  "categories": [
    {"name": "Category Name", "color": "#000000"}
  ],
  "tasks": [
    {
      "title": "Task Title",
      "description": "Detailed description",
      "category_name": "Category Name",
      "priority": "high|medium|low"
    }
  ]
}

Rules:
- Always create 3-7 practical, actionable tasks
- Group tasks into 2-4 logical categories
- Use colors: #000000 (black), #333333 (dark gray), #666666 (medium gray)
- Priorities: high, medium, low
- Make descriptions specific and helpful`

const chatSystemPrompt = "You are TaskMaster AI, a helpful assistant for task and " +
	"productivity management. You help users organize their tasks, provide " +
	"productivity advice, and assist with planning. Be friendly, concise, and " +
	"focused on helping users be more productive. When users ask for task " +
	"creation, provide specific, actionable suggestions."

const summarySystemPrompt = "You are a helpful assistant that creates concise summaries " +
	"of conversations. Focus on extracting user preferences and patterns."

func buildChecklistPrompt(text string) string {
	return fmt.Sprintf(`Parse this checklist text into a structured JSON format. Focus on extracting:
1. Main sections (numbered items like "1. Planning", "2. Content Creation", etc.)
2. Action items within each section
3. Any status information for the task owner or reviewer

Return a JSON object with this structure:
{
    "sections": [
        {
            "id": 1,
            "title": "Section Title",
            "ownerStatus": "status or 'Status not specified'",
            "reviewerStatus": "status or 'Status not specified'",
            "actions": ["action 1", "action 2"]
        }
    ]
}

Text to parse:
%s

Return ONLY valid JSON, no markdown formatting or explanations.`, text)
}

func buildRestructurePrompt(text string) string {
	return fmt.Sprintf(`Analyze the following text and organize it into logical categories with priorities.

Input text to organize:
%s

Respond with a JSON object in this exact format:
{
    "originalCount": number,
    "categories": {
        "urgent": [array of urgent items],
        "important": [array of important items],
        "routine": [array of routine items],
        "misc": [array of other items]
    },
    "suggestions": [array of helpful suggestions about the organization]
}

Categorization rules:
- "urgent": Items marked as urgent, ASAP, immediate, critical deadlines
- "important": High-priority items that significantly impact goals
- "routine": Regular, recurring, or maintenance tasks
- "misc": Everything else that doesn't fit the above categories

Clean up the text and make items actionable. Respond with ONLY the JSON object.`, text)
}

func buildSummaryPrompt(turns []Turn) string {
	prompt := "Summarize the following conversation into a concise context that can be " +
		"used to better understand the user's task management preferences. Focus on key " +
		"preferences and patterns.\n\nConversation:\n"
	for _, turn := range turns {
		prompt += fmt.Sprintf("%s: %s\n", turn.Role, turn.Content)
	}
	return prompt
}
