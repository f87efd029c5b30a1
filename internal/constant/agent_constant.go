package constant

const (
	MessageRoleUser      = "user"
	MessageRoleAssistant = "assistant"
	MessageRoleSystem    = "system"
)

// Fixed user-facing phrases. The assistant speaks rioplatense Spanish;
// wording is intentionally short because replies are read aloud.
const (
	PhraseCancelled        = "Dale, cancelado. ¿Algo más?"
	PhraseStartOver        = "Parece que estamos teniendo problemas para entendernos. ¿Podés repetir todo desde el principio?"
	PhraseGreeting         = "¡Hola! ¿En qué te puedo ayudar?"
	PhraseGenericDone      = "Listo, ¿algo más?"
	PhraseGenericSuccess   = "Listo."
	PhraseRepeatPlease     = "Perdón, tuve un problema para procesar eso. ¿Podrías repetirlo?"
	PhraseMoreDetails      = "¿Podrías darme más detalles?"
	PhraseFailureFmt       = "Ups, hubo un problema: %s. ¿Querés que lo intente de nuevo?"
	PhraseSomethingWrong   = "Algo salió mal"
	PhraseContactNotFound  = "No encontré ningún contacto llamado '%s'. ¿A quién te referís?"
	PhraseContactAmbiguous = "Encontré varios contactos: %s. ¿A cuál te referís?"
	PhraseSlotFallbackFmt  = "¿Podrías darme más información sobre %s?"
)

// IntentDetectionPrompt instructs the model to classify the latest
// utterance against the fixed intent set and extract entities. The reply
// must be a single JSON object.
const IntentDetectionPrompt = `Sos el clasificador de intenciones de un asistente de voz.
Analizá el último mensaje del usuario y devolvé SOLO un objeto JSON válido con esta forma:

{
  "intent": "send_message|set_reminder|create_note|open_app|open_url|search_web|set_timer|general_query|greeting|confirm|cancel|unknown",
  "confidence": 0.95,
  "entities": {"recipient": "...", "message_content": "..."},
  "missing": ["message_content"],
  "reasoning": "breve explicación"
}

Reglas:
- "entities" contiene solo los valores que el usuario dijo explícitamente.
- "missing" lista los slots requeridos que faltan para la intención detectada.
- Si el mensaje es charla general o no se entiende, usá "general_query" o "unknown".
- No agregues texto fuera del JSON.`

// ClarificationQuestionPrompt asks the model to phrase ONE short natural
// question for a missing slot. Used only when the canned catalog has no
// entry for the slot.
const ClarificationQuestionPrompt = `Sos un asistente amigable. Generá UNA pregunta corta
y natural para obtener la información faltante.
Usá español rioplatense casual. Solo la pregunta, nada más.

Intención: %s
Entidades que ya tengo: %v
Necesito saber: %s

Generá solo la pregunta.`

// ConversationalReplyPrompt frames free-form replies for general
// queries. Replies must stay short because they are spoken aloud.
const ConversationalReplyPrompt = `Sos un asistente de voz amigable y conciso.
Respondé en español rioplatense casual y breve.
Tus respuestas deben ser cortas porque se van a leer en voz alta.`
