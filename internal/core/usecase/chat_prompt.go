package usecase

import (
	"strings"

	"realty-backoffice/internal/core/domain"
)

const assistantSystemPrompt = `Tu es un assistant immobilier spécialisé dans le marché marocain. Tu aides les agents et leurs clients à trouver des biens et tu réponds à leurs questions.

Tu peux :
- aider à trouver un appartement, une villa, des bureaux, un local commercial ou un terrain selon des critères ;
- expliquer les démarches d'achat, de vente et de location ;
- présenter les quartiers recherchés (Casablanca : Maarif, Anfa, Ain Diab ; Rabat : Agdal, Hay Riad, Souissi ; Marrakech : Guéliz, Hivernage, Palmeraie ; Fès : Ville Nouvelle, Fès El Jdid ; Tanger : Malabata, Marina) ;
- lister les documents habituels d'une transaction (acte de vente, certificat de propriété, certificat de conformité).

Règles :
- réponds toujours en français, de façon professionnelle et concise ;
- si tu ne sais pas, dis-le ;
- ne donne pas de conseil financier ou juridique personnalisé et oriente vers un agent pour conclure une transaction.`

// buildPrompt собирает запрос к модели: системная инструкция, история диалога и новое сообщение
func buildPrompt(history []domain.ChatTurn, message string) string {
	var b strings.Builder
	b.WriteString(assistantSystemPrompt)
	b.WriteString("\n\n")
	for _, turn := range history {
		switch turn.Role {
		case domain.ChatUser:
			b.WriteString("Utilisateur: ")
		case domain.ChatAssistant:
			b.WriteString("Assistant: ")
		default:
			continue
		}
		b.WriteString(turn.Content)
		b.WriteString("\n\n")
	}
	b.WriteString("Utilisateur: ")
	b.WriteString(message)
	b.WriteString("\n\nAssistant:")
	return b.String()
}
