package page

// chartScript drives the embedded SVG. It expects a global DATA (see payload)
// and the element ids written by svg.Generate in interactive mode. The zoom,
// hover and click rules mirror interact.Controller.
const chartScript = `
(function () {
  "use strict";
  var D = DATA;
  var NS = "http://www.w3.org/2000/svg";
  var W = D.width, H = D.height;
  var base = { d0: D.domain[0], d1: D.domain[1], r0: 0, r1: W };
  var current = base;
  var t = { k: 1, x: 0, y: 0 };

  var overlay = document.getElementById("overlay");
  var axis = document.getElementById("axis");
  var guide = document.getElementById("guide");
  var year = document.getElementById("year");
  var tooltip = document.getElementById("tooltip");
  var bars = [], labels = [], barY = [], barH = [];
  for (var i = 0; i < D.records.length; i++) {
    bars.push(document.getElementById("bar-" + i));
    labels.push(document.getElementById("label-" + i));
    barY.push(parseFloat(bars[i].getAttribute("y")));
    barH.push(parseFloat(bars[i].getAttribute("height")));
  }

  function interpolate(a0, a1, b0, b1, v) {
    var span = a1 - a0;
    if (span === 0) return b0 + 0.5 * (b1 - b0);
    return b0 + (v - a0) / span * (b1 - b0);
  }
  function apply(s, v) { return interpolate(s.d0, s.d1, s.r0, s.r1, v); }
  function invert(s, px) { return interpolate(s.r0, s.r1, s.d0, s.d1, px); }
  function lo(r) { return Math.min(r.start, r.end); }
  function hi(r) { return Math.max(r.start, r.end); }

  var e10 = Math.sqrt(50), e5 = Math.sqrt(10), e2 = Math.sqrt(2);
  function tickSpec(start, stop, count) {
    var step = (stop - start) / Math.max(0, count);
    var power = Math.floor(Math.log10(step));
    var error = step / Math.pow(10, power);
    var factor = error >= e10 ? 10 : error >= e5 ? 5 : error >= e2 ? 2 : 1;
    var i1, i2, inc;
    if (power < 0) {
      inc = Math.pow(10, -power) / factor;
      i1 = Math.round(start * inc);
      i2 = Math.round(stop * inc);
      if (i1 / inc < start) ++i1;
      if (i2 / inc > stop) --i2;
      inc = -inc;
    } else {
      inc = Math.pow(10, power) * factor;
      i1 = Math.round(start / inc);
      i2 = Math.round(stop / inc);
      if (i1 * inc < start) ++i1;
      if (i2 * inc > stop) --i2;
    }
    if (i2 < i1 && 0.5 <= count && count < 2) return tickSpec(start, stop, count * 2);
    return [i1, i2, inc];
  }
  function ticks(start, stop, count) {
    if (!(count > 0)) return [];
    if (start === stop) return [start];
    var reverse = stop < start;
    if (reverse) { var s = start; start = stop; stop = s; }
    var spec = tickSpec(start, stop, count), i1 = spec[0], i2 = spec[1], inc = spec[2];
    if (!(i2 >= i1) || !isFinite(inc) || inc === 0) return [];
    var out = [];
    for (var j = 0; j <= i2 - i1; j++) {
      var k = reverse ? i2 - j : i1 + j;
      out.push(inc < 0 ? k / -inc : k * inc);
    }
    return out;
  }

  function drawAxis() {
    var old = axis.querySelectorAll("g.tick");
    for (var i = 0; i < old.length; i++) axis.removeChild(old[i]);
    var values = ticks(current.d0, current.d1, D.tickCount);
    for (var j = 0; j < values.length; j++) {
      var g = document.createElementNS(NS, "g");
      g.setAttribute("class", "tick");
      g.setAttribute("transform", "translate(" + apply(current, values[j]) + ",0)");
      var line = document.createElementNS(NS, "line");
      line.setAttribute("y2", "6");
      line.setAttribute("stroke", D.text);
      var text = document.createElementNS(NS, "text");
      text.setAttribute("y", "9");
      text.setAttribute("dy", "0.71em");
      text.setAttribute("text-anchor", "middle");
      text.textContent = String(Math.round(values[j]));
      g.appendChild(line);
      g.appendChild(text);
      axis.appendChild(g);
    }
  }

  function pointer(e) {
    var r = overlay.getBoundingClientRect();
    return [e.clientX - r.left, e.clientY - r.top];
  }

  function pick(px) {
    var found = -1;
    for (var i = 0; i < D.records.length; i++) {
      var r = D.records[i];
      if (px < apply(current, lo(r)) || px > apply(current, hi(r))) continue;
      if (D.hover !== "topmost") return i;
      if (found < 0 || barY[i] < barY[found]) found = i;
    }
    return found;
  }

  function hit(px, py) {
    for (var i = 0; i < D.records.length; i++) {
      var r = D.records[i];
      if (px >= apply(current, lo(r)) && px <= apply(current, hi(r)) &&
          py >= barY[i] && py <= barY[i] + barH[i]) return i;
    }
    return -1;
  }

  function hideLabels() {
    for (var i = 0; i < labels.length; i++) labels[i].setAttribute("opacity", "0");
  }

  overlay.addEventListener("mouseenter", function () {
    guide.setAttribute("opacity", "1");
    year.setAttribute("opacity", "1");
  });
  overlay.addEventListener("mouseleave", function () {
    guide.setAttribute("opacity", "0");
    year.setAttribute("opacity", "0");
    hideLabels();
  });
  overlay.addEventListener("mousemove", function (e) {
    var px = pointer(e)[0];
    guide.setAttribute("x1", px);
    guide.setAttribute("x2", px);
    year.setAttribute("x", px);
    year.setAttribute("y", D.yearOffset);
    year.textContent = String(Math.round(invert(current, px)));
    hideLabels();
    var i = pick(px);
    if (i >= 0) labels[i].setAttribute("opacity", "1");
  });

  var drag = null, dragged = false;
  overlay.addEventListener("click", function (e) {
    if (dragged) { dragged = false; return; }
    var p = pointer(e);
    var i = hit(p[0], p[1]);
    if (i < 0) return;
    bars[i].setAttribute("fill", D.selected);
    tooltip.style.transition = "opacity " + D.tooltip.fadeMs + "ms";
    tooltip.innerHTML = D.records[i].tooltip;
    tooltip.style.left = (e.pageX + D.tooltip.dx) + "px";
    tooltip.style.top = (e.pageY + D.tooltip.dy) + "px";
    tooltip.style.opacity = D.tooltip.opacity;
  });

  function clampK(k) { return Math.max(D.scaleExtent[0], Math.min(D.scaleExtent[1], k)); }
  function shift(d0, d1) {
    if (d1 > d0) return (d0 + d1) / 2;
    var v = Math.min(0, d0);
    if (v !== 0) return v;
    return Math.max(0, d1);
  }
  function constrain(tr) {
    var dx = shift((0 - tr.x) / tr.k, (W - tr.x) / tr.k - W);
    var dy = shift((0 - tr.y) / tr.k, (H - tr.y) / tr.k - H);
    return { k: tr.k, x: tr.x + tr.k * dx, y: tr.y + tr.k * dy };
  }
  function anchor(tr, p0, p1) {
    return { k: tr.k, x: p0[0] - p1[0] * tr.k, y: p0[1] - p1[1] * tr.k };
  }
  function scaleTo(k, p) {
    var p1 = [(p[0] - t.x) / t.k, (p[1] - t.y) / t.k];
    return constrain(anchor({ k: clampK(k), x: t.x, y: t.y }, p, p1));
  }

  function zoomed(tr) {
    t = tr;
    current = {
      d0: invert(base, (0 - t.x) / t.k),
      d1: invert(base, (W - t.x) / t.k),
      r0: 0, r1: W
    };
    drawAxis();
    for (var i = 0; i < D.records.length; i++) {
      var r = D.records[i];
      bars[i].setAttribute("x", apply(current, lo(r)));
      bars[i].setAttribute("width", Math.abs(apply(current, r.end) - apply(current, r.start)));
      labels[i].setAttribute("x", apply(current, hi(r)) + D.labelOffset);
    }
  }

  overlay.addEventListener("wheel", function (e) {
    e.preventDefault();
    var m = e.deltaMode === 1 ? 0.05 : e.deltaMode ? 1 : 0.002;
    if (e.ctrlKey) m *= 10;
    var k = clampK(t.k * Math.pow(2, -e.deltaY * m));
    if (k === t.k) return;
    zoomed(scaleTo(k, pointer(e)));
  }, { passive: false });

  overlay.addEventListener("dblclick", function (e) {
    e.preventDefault();
    zoomed(scaleTo(t.k * (e.shiftKey ? 0.5 : 2), pointer(e)));
  });

  overlay.addEventListener("mousedown", function (e) {
    if (e.button !== 0) return;
    drag = { p: pointer(e), t: t };
    dragged = false;
  });
  window.addEventListener("mousemove", function (e) {
    if (!drag) return;
    var p = pointer(e);
    if (!dragged && Math.abs(p[0] - drag.p[0]) + Math.abs(p[1] - drag.p[1]) < 3) return;
    dragged = true;
    var from = [(drag.p[0] - drag.t.x) / drag.t.k, (drag.p[1] - drag.t.y) / drag.t.k];
    zoomed(constrain(anchor(drag.t, p, from)));
  });
  window.addEventListener("mouseup", function () { drag = null; });
})();
`
