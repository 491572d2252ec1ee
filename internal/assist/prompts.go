package assist

// Prompt input limits in bytes. Document text is truncated before templating
// to keep prompts inside the model context window.
const (
	summaryInputLimit   = 4000
	answerInputLimit    = 6000
	challengeInputLimit = 6000
	evaluateInputLimit  = 4000
)

// summaryPrompt templates: max words, document text, max words.
const summaryPrompt = `Please provide a concise summary of the following document in no more than %d words.
The summary should capture the main points, key findings, and overall theme of the document.

Document:
%s

Summary (max %d words):`

// answerPrompt templates: document text, conversation context, question.
const answerPrompt = `Based on the following document, please answer the question. Your answer must be:
1. Directly supported by the document content
2. Include specific references to sections/paragraphs where the information is found
3. If the information is not in the document, clearly state that
4. Be accurate and avoid hallucination

Document:
%s
%s
Question: %s

Please provide your answer in the following format:
Answer: [Your detailed answer here]

Justification: [Specific reference to where this information is found in the document, e.g., "This information is found in paragraph 3 of section 2..." or "According to the document's introduction..."]

If the information is not available in the document, state: "This information is not available in the provided document."`

// challengePrompt templates: count, document text, count.
const challengePrompt = `Based on the following document, generate %d challenging questions that test comprehension and logical reasoning.
The questions should:
1. Require understanding of the document's content
2. Test logical reasoning and inference
3. Have clear, verifiable answers from the document
4. Be of varying difficulty levels
5. Cover different aspects of the document

Document:
%s

Please provide exactly %d questions in the following JSON format:
{
    "questions": [
        {
            "question": "Your challenging question here",
            "correct_answer": "The correct answer based on the document",
            "explanation": "Detailed explanation of why this is correct, with document references",
            "difficulty": "easy/medium/hard"
        }
    ]
}

Make sure the JSON is valid and properly formatted.`

// evaluatePrompt templates: document text, question, correct answer, user answer.
const evaluatePrompt = `Evaluate the user's answer to the following question based on the document content.

Document context:
%s

Question: %s

Correct Answer: %s

User's Answer: %s

Please evaluate the user's answer and provide:
1. A score from 0-100 (0 = completely wrong, 100 = perfectly correct)
2. Detailed feedback explaining what's correct/incorrect
3. Specific document references that support the evaluation

Format your response as:
Score: [0-100]

Feedback: [Detailed feedback here]

Document Reference: [Specific references to support your evaluation]`

// truncate caps text at limit bytes.
func truncate(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	return text[:limit]
}
