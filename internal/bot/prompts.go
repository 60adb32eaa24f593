package bot

import (
	"fmt"
	"strings"

	"pizzeria/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// Customer-facing reply texts. The dialogue speaks Brazilian Portuguese.
const (
	msgWelcome = "Olá! Bem-vindo à Pizzaria. 🍕\n" +
		"Envie *cadastrar* para criar sua conta ou *login* para entrar."

	msgAskName = "Vamos começar seu cadastro!\nQual é o seu nome?"

	msgNameTooShort = "O nome precisa ter pelo menos 3 letras. Qual é o seu nome?"

	msgAskPostalCode = "Agora me informe seu CEP (somente os 8 números)."

	msgInvalidPostalCode = "CEP inválido: envie exatamente 8 números, sem traço."

	msgPostalCodeNotFound = "Não encontrei esse CEP. Confira os números e envie novamente."

	msgPostalLookupFailed = "Não consegui validar seu CEP agora. Tente novamente em instantes."

	msgAskHouseNumber = "Qual é o número da sua residência?"

	msgHouseNumberMissing = "Preciso do número da residência para a entrega. Qual é o número?"

	msgAskResidenceType = "Qual é o tipo da sua residência?\n" +
		"1 - Casa\n2 - Apartamento\n3 - Condomínio"

	msgInvalidResidenceType = "Opção inválida. Responda 1, 2 ou 3:\n" +
		"1 - Casa\n2 - Apartamento\n3 - Condomínio"

	msgAskComplement = "Algum complemento (bloco, apartamento, referência)? " +
		"Se não houver, responda *não*."

	msgAlreadyRegistered = "Este número já está cadastrado. Envie *login* para entrar."

	msgRegistrationFailed = "Não foi possível concluir seu cadastro agora. " +
		"Envie *cadastrar* para tentar novamente."

	msgRegisteredLoginHint = "Cadastro concluído! Envie *login* para entrar."

	msgUnknownPhone = "Número não cadastrado. Envie *cadastrar* para criar sua conta."

	msgAuthenticatedHelp = "Comandos disponíveis:\n" +
		"*cardapio* - ver o cardápio e pedir\n" +
		"*pedidos* - ver seus últimos pedidos\n" +
		"*sair* - encerrar a sessão"

	msgMenuEmpty = "Nosso cardápio está indisponível no momento. Tente mais tarde."

	msgSelectProduct = "Envie o número do item desejado ou *cancelar* para voltar."

	msgInvalidSelection = "Opção inválida. Envie o número de um item do cardápio."

	msgAskQuantity = "Quantas unidades você deseja?"

	msgInvalidQuantity = "Quantidade inválida. Envie um número inteiro maior que zero."

	msgPriceUnavailable = "Preço indisponível para este item. Escolha outro item do cardápio."

	msgNoOrderInProgress = "Nenhum pedido em andamento. Envie *cardapio* para começar um."

	msgOrderCancelled = "Pedido cancelado. Envie *cardapio* quando quiser pedir de novo."

	msgOrderFailed = "Não foi possível fechar seu pedido. " +
		"Envie *cardapio* para montar um novo."

	msgRegistrationCancelled = "Cadastro cancelado."

	msgGoodbye = "Até logo! Envie qualquer mensagem para começar de novo."

	msgNoOrdersYet = "Você ainda não fez nenhum pedido. Envie *cardapio* para começar."

	msgNoAddress = "Você não tem um endereço de entrega cadastrado. " +
		"Fale com a pizzaria para atualizar seu cadastro."

	msgInternalError = "Tivemos um problema por aqui. Pode tentar de novo?"
)

// statusLabels maps the lifecycle set to the words customers see.
var statusLabels = map[entity.OrderStatus]string{
	entity.StatusReceived:       "Recebido",
	entity.StatusConfirmed:      "Confirmado",
	entity.StatusPreparing:      "Em preparo",
	entity.StatusBaking:         "No forno",
	entity.StatusOutForDelivery: "Saiu para entrega",
	entity.StatusDelivered:      "Entregue",
}

func statusLabel(status entity.OrderStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}

	return string(status)
}

func formatPrice(value decimal.Decimal) string {
	return "R$ " + value.StringFixed(2)
}

// formatMenu renders the numbered snapshot the selection indexes into.
func formatMenu(products []*entity.Product) string {
	var sb strings.Builder
	sb.WriteString("🍕 *Cardápio*\n")
	for i, product := range products {
		fmt.Fprintf(&sb, "\n%d. *%s*", i+1, product.Name)
		if product.CategoryName != "" {
			fmt.Fprintf(&sb, " (%s)", product.CategoryName)
		}
		if product.Description != "" {
			fmt.Fprintf(&sb, "\n   %s", product.Description)
		}
		prices := make([]string, 0, len(product.Prices))
		for _, tag := range entity.SizeTags {
			if entry, ok := product.PriceFor(tag); ok {
				prices = append(prices, fmt.Sprintf("%s %s", tag, formatPrice(entry.Value)))
			}
		}
		if len(prices) > 0 {
			fmt.Fprintf(&sb, "\n   %s", strings.Join(prices, " | "))
		}
	}

	return sb.String()
}

// formatSizes renders the variant prompt for a multi-priced product.
func formatSizes(product *entity.Product) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Qual tamanho de *%s* você deseja?\n", product.Name)
	for _, tag := range entity.SizeTags {
		if entry, ok := product.PriceFor(tag); ok {
			fmt.Fprintf(&sb, "%s - %s (%s)\n", tag, tag.Label(), formatPrice(entry.Value))
		}
	}
	sb.WriteString("Responda com a letra do tamanho.")

	return sb.String()
}

// formatDraft renders the confirmation summary with the running total.
func formatDraft(draft *orderDraft) string {
	var sb strings.Builder
	sb.WriteString("🧾 *Seu pedido:*\n")
	for _, line := range draft.Lines {
		lineTotal := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
		fmt.Fprintf(&sb, "%dx %s (%s) - %s\n",
			line.Quantity, line.Product.Name, line.Size.Label(), formatPrice(lineTotal))
	}
	fmt.Fprintf(&sb, "*Total: %s*\n\n", formatPrice(draft.Total))
	sb.WriteString("Envie *confirmar* para fechar o pedido, " +
		"*pedir* para adicionar mais um item ou *cancelar* para desistir.")

	return sb.String()
}

// formatOrderPlaced renders the commit receipt.
func formatOrderPlaced(order *entity.Order) string {
	return fmt.Sprintf("Pedido recebido! 🎉\nNúmero: %s\nTotal: %s\n"+
		"Acompanhe com *pedidos*.",
		shortOrderID(order.ID.String()), formatPrice(order.Total))
}

// formatOrders renders the "pedidos" listing, most recent first.
func formatOrders(orders []*entity.Order) string {
	var sb strings.Builder
	sb.WriteString("📋 *Seus pedidos:*\n")
	for _, order := range orders {
		fmt.Fprintf(&sb, "\n#%s - %s - %s\n%s",
			shortOrderID(order.ID.String()),
			formatPrice(order.Total),
			statusLabel(order.Status),
			order.CreatedAt.Format("02/01/2006 15:04"))
	}

	return sb.String()
}

// shortOrderID keeps receipts readable; the full UUID stays in the store.
func shortOrderID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}

	return id
}

func greeting(name string) string {
	return fmt.Sprintf("Olá, %s! 👋\n\n%s", name, msgAuthenticatedHelp)
}

// promptFor re-states the question the current state is waiting on.
func promptFor(s *Session) string {
	switch s.State {
	case StateRegisteringName:
		return msgAskName
	case StateRegisteringPostalCode:
		return msgAskPostalCode
	case StateRegisteringHouseNumber:
		return msgAskHouseNumber
	case StateRegisteringResidenceType:
		return msgAskResidenceType
	case StateRegisteringComplement:
		return msgAskComplement
	case StateSelectingProduct:
		return msgSelectProduct
	case StateSelectingVariant:
		if s.Order != nil && s.Order.Pending != nil {
			return formatSizes(s.Order.Pending.Product)
		}

		return msgSelectProduct
	case StateEnteringQuantity:
		return msgAskQuantity
	case StateConfirming:
		if s.Order != nil {
			return formatDraft(s.Order)
		}

		return msgNoOrderInProgress
	case StateAuthenticated:
		return msgAuthenticatedHelp
	default:
		return msgWelcome
	}
}
