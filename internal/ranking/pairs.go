package ranking

import (
	"math"
	"sort"

	"munroaccess.org/internal/models"
)

// redundancyWindowHours bounds how far from the chosen return an
// alternative may depart and still count as a fallback.
const redundancyWindowHours = 2.0

// ScoredPair is one feasible (outbound, return) combination with its
// score. Indexes refer to the input slices handed to SelectPairs.
type ScoredPair struct {
	OutboundIndex int
	ReturnIndex   int
	Outbound      models.Itinerary
	Return        models.Itinerary
	Score         models.ItineraryScore
}

// PairRejection records why one combination was excluded, for diagnostics.
type PairRejection struct {
	OutboundIndex int          `json:"outboundIndex"`
	ReturnIndex   int          `json:"returnIndex"`
	Reason        RejectReason `json:"reason"`
}

// SelectPairs scores the full outbound×return cross-product for one day.
// Accepted pairs with more than one alternative return departing after the
// buffer-adjusted hike end and within two hours of the chosen return get
// their returnOptions component raised to 1.0 and are rescored. The result
// is sorted by raw score descending; ties keep input order.
func SelectPairs(outbounds, returns []models.Itinerary, route models.Route, prefs models.RankingPreferences) ([]ScoredPair, []PairRejection) {
	var pairs []ScoredPair
	var rejections []PairRejection

	for i := range outbounds {
		outbound := outbounds[i]
		if len(returns) == 0 {
			outcome := Score(outbound, nil, route, prefs)
			rejections = append(rejections, PairRejection{
				OutboundIndex: i,
				ReturnIndex:   -1,
				Reason:        outcome.Reason,
			})
			continue
		}

		for j := range returns {
			ret := returns[j]
			outcome := Score(outbound, &ret, route, prefs)
			if !outcome.Feasible() {
				rejections = append(rejections, PairRejection{
					OutboundIndex: i,
					ReturnIndex:   j,
					Reason:        outcome.Reason,
				})
				continue
			}

			if countAlternativeReturns(outbound, returns, j, route, prefs) > 1 {
				outcome = scoreWithReturnOptions(outbound, &ret, route, prefs, 1.0)
			}

			pairs = append(pairs, ScoredPair{
				OutboundIndex: i,
				ReturnIndex:   j,
				Outbound:      outbound,
				Return:        ret,
				Score:         outcome.Score,
			})
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].Score.Raw > pairs[b].Score.Raw
	})

	return pairs, rejections
}

// countAlternativeReturns counts other returns the hiker could still catch
// if the chosen one were missed: departing strictly after the
// buffer-adjusted hike end, within the redundancy window of the chosen
// return's departure.
func countAlternativeReturns(outbound models.Itinerary, returns []models.Itinerary, chosen int, route models.Route, prefs models.RankingPreferences) int {
	hikeEnd := hikeEndHours(outbound, route, prefs)
	chosenDepart := returnDepartureHours(outbound, returns[chosen])

	count := 0
	for k := range returns {
		if k == chosen {
			continue
		}
		altDepart := returnDepartureHours(outbound, returns[k])
		if altDepart > hikeEnd+prefs.ReturnBuffer && math.Abs(altDepart-chosenDepart) <= redundancyWindowHours {
			count++
		}
	}
	return count
}
