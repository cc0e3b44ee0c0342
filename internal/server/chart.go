package server

import (
	"fmt"
	"net/http"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/glabrego/wikiscroll/internal/app"
	"github.com/glabrego/wikiscroll/internal/content"
)

func (s *Server) handlePopularChart(w http.ResponseWriter, r *http.Request) {
	limit, err := intQuery(r, "limit", app.DefaultPopularLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	items, err := s.svc.Popular(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := popularChart(items).Render(w); err != nil {
		s.logger.Warn("render chart", "err", err)
	}
}

func popularChart(items []content.Item) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Most liked articles",
			Subtitle: fmt.Sprintf("top %d", len(items)),
		}),
	)

	titles := make([]string, 0, len(items))
	counts := make([]opts.BarData, 0, len(items))
	for _, item := range items {
		titles = append(titles, item.Title)
		counts = append(counts, opts.BarData{Value: item.LikeCount})
	}
	bar.SetXAxis(titles).AddSeries("Likes", counts)
	return bar
}
