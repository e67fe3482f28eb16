package i18n

var ptBRMessages = map[Code]string{
	CodeUnknown:                   "Algo deu errado durante a rolagem.",
	CodeDiceInvalidNotation:       `"{{.Expression}}" não é uma notação de dados válida.`,
	CodeDiceEmptyExpression:       "Informe uma expressão de dados para rolar.",
	CodeDiceUnbalancedParentheses: `"{{.Expression}}" tem parênteses desbalanceados.`,
	CodeDiceDivisionByZero:        `"{{.Expression}}" divide por zero.`,
	CodeDiceLeftoverOperands:      `"{{.Expression}}" está sem um operador entre valores.`,
	CodeDiceStackUnderflow:        `"{{.Expression}}" tem um operador sem valor.`,
	CodeDiceNumberOutOfRange:      `"{{.Expression}}" contém um número grande demais.`,
	CodeDiceTooManyDice:           `"{{.Expression}}" rola mais de {{.MaxDice}} dados de uma vez.`,
	CodeDiceInvalidSpec:           `"{{.Expression}}" pede dados que não podem ser rolados.`,
	CodeDiceUnknownHandicap:       `"{{.Kind}}" não é uma vantagem; use advantage ou disadvantage.`,
	CodeDiceHandicapNotSingleDie:  `Vantagem e desvantagem exigem uma única rolagem NdM, recebido "{{.Expression}}".`,
	CodeJournalInvalidFilter:      "O filtro do histórico não é válido: {{.Reason}}",
	CodeJournalInvalidPageToken:   "O token de página do histórico não é válido.",
	CodeJournalUnavailable:        "O histórico de rolagens não está disponível.",
}

func init() {
	RegisterCatalog("pt-BR", NewCatalog("pt-BR", ptBRMessages))
}
