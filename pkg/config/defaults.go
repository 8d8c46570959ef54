package config

// IconEntry maps an application id to a glyph.
type IconEntry struct {
	AppID string
	Icon  string
}

// DefaultIcons is the built-in icon table. Keys are lowercase; window app ids
// are lowercased before lookup. When a key appears twice the later entry wins.
var DefaultIcons = []IconEntry{
	{"alacritty", "\uf120"},
	{"atom", "\uf121"},
	{"banshee", "\uf04b"},
	{"blender", "\uf1b2"},
	{"chromium", "\uf268"},
	{"com.mitchellh.ghostty", "\uf120"},
	{"cura", "\uf1b2"},
	{"darktable", "\uf03e"},
	{"discord", "\uf075"},
	{"eclipse", "\uf121"},
	{"emacs", "\uf121"},
	{"eog", "\uf03e"},
	{"evince", "\uf1c1"},
	{"evolution", "\uf0e0"},
	{"factorio", "\uf1b6"},
	{"feh", "\uf03e"},
	{"file-roller", "\uf066"},
	{"filezilla", "\uf233"},
	{"firefox", "\uf269"},
	{"firefox-esr", "\uf269"},
	{"foot", "\uf120"},
	{"gimp", "\uf03e"},
	{"gimp-2.8", "\uf03e"},
	{"gnome-control-center", "\uf205"},
	{"gnome-terminal-server", "\uf120"},
	{"google-chrome", "\uf268"},
	{"google-chrome", "\uf268"},
	{"gpick", "\uf1fb"},
	{"imv", "\uf03e"},
	{"insomnia", "\uf0ac"},
	{"java", "\uf121"},
	{"jetbrains-idea", "\uf121"},
	{"jetbrains-studio", "\uf121"},
	{"keepassxc", "\uf084"},
	{"keybase", "\uf084"},
	{"kicad", "\uf2db"},
	{"kitty", "\uf120"},
	{"libreoffice", "\uf15c"},
	{"lua5.1", "\uf186"},
	{"mpv", "\uf26c"},
	{"mupdf", "\uf1c1"},
	{"mysql-workbench-bin", "\uf1c0"},
	{"nautilus", "\uf0c5"},
	{"nemo", "\uf0c5"},
	{"openscad", "\uf1b2"},
	{"pavucontrol", "\uf028"},
	{"postman", "\uf197"},
	{"prusa-slicer", "\uf1b2"},
	{"rhythmbox", "\uf04b"},
	{"robo3t", "\uf1c0"},
	{"signal", "\uf075"},
	{"slack", "\uf198"},
	{"slic3r.pl", "\uf1b2"},
	{"spotify", "\uf001"},
	{"steam", "\uf1b6"},
	{"subl", "\uf15c"},
	{"subl3", "\uf15c"},
	{"sublime_text", "\uf15c"},
	{"thunar", "\uf0c5"},
	{"thunderbird", "\uf0e0"},
	{"totem", "\uf04b"},
	{"urxvt", "\uf120"},
	{"xfce4-terminal", "\uf120"},
	{"xournal", "\uf15c"},
	{"yelp", "\uf121"},
	{"zenity", "\uf2d0"},
	{"zoom", "\uf075"},
}
