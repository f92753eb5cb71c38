package chat

// SystemPrompt steers every retrieval-augmented query. It is sent as the
// first user turn of each request, followed by a fixed model acknowledgement,
// so the stored transcript never contains it.
const SystemPrompt = "You are a Tamil Nadu Government Orders (GO) search assistant powered by TNe-GA. " +
	"You help users find and understand Government Orders issued by the " +
	"Information Technology & Digital Services Department of Tamil Nadu.\n\n" +
	"When answering:\n" +
	"- Always cite the specific GO number, date, and department.\n" +
	"- Provide a clear summary of the relevant GO content.\n" +
	"- If multiple GOs are relevant, mention all of them.\n" +
	"- If the query doesn't match any GO, say so clearly.\n" +
	"- Be concise but thorough."

// systemAck is the canned model reply to the system prompt turn.
const systemAck = "Understood. I'm ready to help with Tamil Nadu Government Orders."

// fallbackAnswer replaces an empty model response.
const fallbackAnswer = "I couldn't find a relevant answer."

// WelcomeMessage greets a new session with example queries.
const WelcomeMessage = "Welcome to **TNe-GA GO Search**!\n\n" +
	"I can help you find information from Tamil Nadu Government Orders " +
	"issued by the IT & Digital Services Department.\n\n" +
	"Try asking:\n" +
	"- \"What is the cyber security policy?\"\n" +
	"- \"e-Office budget details\"\n" +
	"- \"Data centre policy 2021\"\n" +
	"- \"List all GOs related to ELCOT\""

// RestartMessage instructs the user when their session is unknown or expired.
const RestartMessage = "Session not initialized. Please restart the chat."
