package table

import (
	"slices"

	"github.com/lox/pokertable/internal/card"
	"github.com/lox/pokertable/internal/fasteval"
	"github.com/lox/pokertable/internal/hand"
	"github.com/lox/pokertable/internal/participant"
	"github.com/lox/pokertable/internal/protocol"
)

// Payout is one distribution made at showdown
type Payout struct {
	Seat     int
	Name     string
	Amount   int
	Category string // hand category code, or protocol.LastStanding
}

// Showdown moves every wager into the bank and pays the winners. A lone
// participant still in the hand takes the whole bank without comparing
// hands. Otherwise the bank is split evenly among the best hands, except
// that an all-in winner is paid no more than its wager times the number of
// seats. All-in winners are paid first, smallest cap first; after a capped
// payout the winners still unpaid split what is left, and once every winner
// is paid the best of the remaining hands takes what the caps left over.
// Chips that do not divide evenly stay in the bank for the next hand.
func (t *Table) Showdown() []Payout {
	t.reg.Lock()
	defer t.reg.Unlock()

	all := t.reg.All()
	wagers := make([]int, len(all))
	var contenders []int
	for seat, p := range all {
		wagers[seat] = p.Wager()
		t.bank += p.Wager()
		p.SetWager(0)
		if !p.Folded() {
			contenders = append(contenders, seat)
		}
	}

	var payouts []Payout
	switch len(contenders) {
	case 0:
		t.logger.Warn("Nobody left in the hand", "bank", t.bank)
	case 1:
		payouts = append(payouts, t.pay(contenders[0], t.bank, protocol.LastStanding))
	default:
		payouts = t.settle(contenders, wagers)
	}

	for _, p := range all {
		t.reg.Broadcast(protocol.EndCards(p.Name(), p.Cards()))
	}
	return payouts
}

func (t *Table) settle(contenders []int, wagers []int) []Payout {
	all := t.reg.All()
	board := t.community[:]

	lists := make([][]hand.Hand, 0, len(contenders))
	best := make(map[int]hand.Hand, len(contenders))
	for _, seat := range contenders {
		cards := t.handCards(all[seat], board)
		hands := hand.FindAll(seat, cards)
		lists = append(lists, hands)
		if len(hands) > 0 {
			best[seat] = hands[len(hands)-1]
		}

		class, err := fasteval.Evaluate(cards)
		if err != nil {
			t.logger.Debug("Evaluator unavailable", "player", all[seat].Name(), "error", err)
			continue
		}
		t.logger.Debug("Contender", "player", all[seat].Name(), "hand", best[seat], "class", int(class), "rank", class)
	}

	var payouts []Payout
	for len(contenders) > 0 && t.bank > 0 {
		winners := hand.Merge(lists...).Winners(contenders)
		if len(winners) == 0 {
			break
		}
		paid, allCapped := t.payWinners(winners, all, wagers, best)
		payouts = append(payouts, paid...)
		if !allCapped {
			break
		}

		// what the capped winners could not claim goes to the best of the rest
		contenders = slices.DeleteFunc(contenders, func(seat int) bool {
			return slices.Contains(winners, seat)
		})
		lists = slices.DeleteFunc(lists, func(hands []hand.Hand) bool {
			return len(hands) > 0 && slices.Contains(winners, hands[0].Owner)
		})
	}
	return payouts
}

// payWinners splits the bank among winners and reports whether every
// payout was capped, leaving chips that no winner could claim
func (t *Table) payWinners(winners []int, all []participant.Participant, wagers []int, best map[int]hand.Hand) ([]Payout, bool) {
	ordered := payoutOrder(winners, all, wagers, t.seats)

	payouts := make([]Payout, 0, len(ordered))
	share := t.bank / len(ordered)
	allCapped := true
	for i, seat := range ordered {
		amount := share
		capped := all[seat].AllIn() && amount > wagers[seat]*t.seats
		if capped {
			amount = wagers[seat] * t.seats
		} else {
			allCapped = false
		}
		payouts = append(payouts, t.pay(seat, amount, best[seat].Category.Code()))
		if left := len(ordered) - i - 1; capped && left > 0 {
			share = t.bank / left
		}
	}
	return payouts, allCapped
}

func (t *Table) handCards(p participant.Participant, board []card.Card) []card.Card {
	hole := p.Cards()
	cards := make([]card.Card, 0, 2+len(board))
	cards = append(cards, hole[0], hole[1])
	return append(cards, board...)
}

// payoutOrder puts capped all-in winners first, smallest cap first, then
// the rest in seat order
func payoutOrder(winners []int, all []participant.Participant, wagers []int, seats int) []int {
	var capped, rest []int
	for _, seat := range winners {
		if all[seat].AllIn() {
			capped = append(capped, seat)
		} else {
			rest = append(rest, seat)
		}
	}
	slices.SortStableFunc(capped, func(a, b int) int {
		return wagers[a]*seats - wagers[b]*seats
	})
	return append(capped, rest...)
}

func (t *Table) pay(seat, amount int, category string) Payout {
	p := t.reg.At(seat)
	p.SetStack(p.Stack() + amount)
	t.bank -= amount
	t.logger.Info("Payout", "player", p.Name(), "amount", amount, "hand", category, "bank", t.bank)
	t.reg.Broadcast(protocol.Won(p.Name(), amount, category))
	return Payout{Seat: seat, Name: p.Name(), Amount: amount, Category: category}
}
