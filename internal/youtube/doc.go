// Package youtube fetches video metadata, chapter markers, and subtitle
// tracks. Metadata comes from the public oEmbed endpoint, chapters from the
// watch page or from timestamp lines in the Data API description, and
// subtitles through yt-dlp in the json3 format.
package youtube
