package classifier

import "fmt"

const promptTemplate = `Analyze the following text and decide which cloud service model it describes.

Text: "%s"

The possible models are:
- IaaS (Infrastructure as a Service): infrastructure services such as servers, storage and networks
- PaaS (Platform as a Service): platforms for developing and deploying applications
- SaaS (Software as a Service): software applications used from a web browser
- FaaS (Function as a Service): serverless functions triggered by events

Answer with the matching model only (IaaS, PaaS, SaaS or FaaS).`

// BuildPrompt embeds the caller's original text in the classification prompt.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}
